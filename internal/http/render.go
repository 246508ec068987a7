package http

import (
	"fmt"

	"waterlog/internal/core"
)

// User-facing texts. The bot speaks Russian, like the original.
const (
	textHelp        = "Жми на кнопку с объёмом или пришли количество в миллилитрах"
	textNoDataToday = "Сегодня записей ещё нет"
	textError       = "Не получилось обработать сообщение, попробуй ещё раз"
)

// renderResponse turns a core response payload into the wire shape,
// including the rendered text.
func renderResponse(resp core.Response) messageResponse {
	out := messageResponse{Kind: resp.Kind.String()}

	switch resp.Kind {
	case core.ResponseHelp:
		out.Text = textHelp
		out.TodayKeyword = resp.TodayKeyword
		for _, q := range resp.QuickAmounts {
			out.QuickAmounts = append(out.QuickAmounts, q.Millilitres)
		}

	case core.ResponseTodayTotal:
		out.Text = fmt.Sprintf("Сегодня выпито: %d мл", resp.Total.Millilitres)
		out.TotalML = resp.Total.Millilitres

	case core.ResponseNoDataToday:
		out.Text = textNoDataToday

	case core.ResponseRecorded:
		out.RecordedML = resp.Recorded.Millilitres
		if resp.HasTotal {
			out.Text = fmt.Sprintf("Записано: %d мл. Сегодня выпито: %d мл",
				resp.Recorded.Millilitres, resp.Total.Millilitres)
			out.TotalML = resp.Total.Millilitres
		} else {
			out.Text = fmt.Sprintf("Записано: %d мл", resp.Recorded.Millilitres)
		}

	case core.ResponseError:
		out.Text = textError
	}

	return out
}
