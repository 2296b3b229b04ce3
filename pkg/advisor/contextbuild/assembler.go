package contextbuild

import (
	"fmt"
	"strings"
	"time"

	"volunteer-matching-be/internal/constant"
	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/pkg/advisor/retrieval"
)

const undecidedLabel = "未定"

// Assemble renders retrieval candidates into the context block that grounds
// answer generation. Pure and deterministic: the same candidates always yield
// the same text, in input order. An empty list yields the fixed no-match
// sentence so the prompt never carries an empty grounding section.
func Assemble(candidates []retrieval.Candidate) string {
	if len(candidates) == 0 {
		return constant.AdvisorNoMatchContext
	}

	blocks := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c.Event != nil {
			blocks = append(blocks, RenderEvent(c.Event))
		} else if c.Document != "" {
			blocks = append(blocks, c.Document)
		}
	}

	if len(blocks) == 0 {
		return constant.AdvisorNoMatchContext
	}

	return strings.Join(blocks, "\n\n")
}

// RenderEvent renders one event as a fixed field block. The indexing pipeline
// embeds this same rendering, so a stored projection and a fresh one match.
func RenderEvent(e *entity.Event) string {
	var b strings.Builder

	fmt.Fprintf(&b, "イベント名: %s\n", e.Name)

	place := undecidedLabel
	if e.Place != nil && *e.Place != "" {
		place = *e.Place
	}
	fmt.Fprintf(&b, "場所: %s\n", place)

	fmt.Fprintf(&b, "日時: %s\n", formatSchedule(e.StartsAt, e.EndsAt))

	fmt.Fprintf(&b, "概要: %s\n", e.ShortDescription)

	if e.LongDescription != nil && *e.LongDescription != "" {
		fmt.Fprintf(&b, "詳細: %s\n", *e.LongDescription)
	}

	fee := "無料"
	if e.Fee > 0 {
		fee = fmt.Sprintf("%d円", e.Fee)
	}
	fmt.Fprintf(&b, "参加費: %s\n", fee)

	capacity := "定員未定"
	if e.Capacity != nil {
		capacity = fmt.Sprintf("%d名", *e.Capacity)
	}
	fmt.Fprintf(&b, "定員: %s", capacity)

	return b.String()
}

func formatSchedule(startsAt, endsAt *time.Time) string {
	if startsAt == nil {
		return undecidedLabel
	}

	const layout = "2006年1月2日 15:04"
	if endsAt == nil {
		return startsAt.Format(layout) + "〜"
	}

	if startsAt.Year() == endsAt.Year() && startsAt.YearDay() == endsAt.YearDay() {
		return fmt.Sprintf("%s〜%s", startsAt.Format(layout), endsAt.Format("15:04"))
	}
	return fmt.Sprintf("%s〜%s", startsAt.Format(layout), endsAt.Format(layout))
}
