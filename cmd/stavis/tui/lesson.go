package tui

import "github.com/charmbracelet/glamour"

// lessonMarkdown is the built-in explainer shown on the lesson page.
const lessonMarkdown = `
## Setup timing in one path

A signal launched by the **launch clock** at the start flop must travel
through the data path and arrive at the end flop *before* the **capture
clock** edge that samples it.

- **Arrival time** — the cumulative delay from the start flop to the end
  flop: every buffer you insert adds its own delay, plus a fixed net delay
  between the flops.
- **Required time** — the clock period, minus the setup-time penalty when
  the setup check is on. The signal must settle this long before capture.
- **Slack** — required time minus arrival time. Non-negative slack means
  the path **meets** timing; negative slack is a **violation**.

## Buffer variants

| Variant | Delay | Tradeoff |
| ------- | ----- | -------- |
| Normal  | base  | balanced |
| LVT     | base x 0.7 | faster, but leaks more power |
| HVT     | base x 1.3 | slower, but leakage-resistant |

Insert buffers with ` + "`n`" + `, ` + "`l`" + `, and ` + "`h`" + ` and watch
the delay marker crawl toward the capture edge. Turn on the setup check with
` + "`s`" + ` to see the required time tighten.

## Things to try

1. Keep adding buffers until the slack goes negative — the verdict flips to
   VIOLATED and the marker turns red.
2. Replace a normal buffer with an LVT one (remove with ` + "`d`" + `, then
   press ` + "`l`" + `) and watch the slack recover.
3. Enable the setup check near zero slack: a path that met timing can fail
   on the setup margin alone.
`

// renderLesson renders the lesson markdown through glamour, falling back to
// the raw text if rendering fails or panics.
func (m Model) renderLesson() (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = m.lessonMD
		}
	}()

	width := m.lesson.Width
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return m.lessonMD
	}
	rendered, err := renderer.Render(m.lessonMD)
	if err != nil {
		return m.lessonMD
	}
	return rendered
}
