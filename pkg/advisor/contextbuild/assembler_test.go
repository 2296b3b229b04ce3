package contextbuild

import (
	"strings"
	"testing"
	"time"

	"volunteer-matching-be/internal/constant"
	"volunteer-matching-be/internal/entity"
	"volunteer-matching-be/pkg/advisor/retrieval"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestAssembleEmptyInput(t *testing.T) {
	got := Assemble(nil)

	if got != constant.AdvisorNoMatchContext {
		t.Errorf("Assemble(nil) = %q, want the no-match sentence", got)
	}
	if got == "" {
		t.Error("context block must never be empty")
	}
}

func TestAssembleKeepsInputOrder(t *testing.T) {
	first := &entity.Event{Id: uuid.New(), Name: "ビーチクリーン活動", ShortDescription: "海岸のゴミ拾い"}
	second := &entity.Event{Id: uuid.New(), Name: "子ども食堂の手伝い", ShortDescription: "配膳と片付け"}

	got := Assemble([]retrieval.Candidate{
		{EventId: first.Id, Event: first},
		{EventId: second.Id, Event: second},
	})

	firstIdx := strings.Index(got, "ビーチクリーン活動")
	secondIdx := strings.Index(got, "子ども食堂の手伝い")
	if firstIdx < 0 || secondIdx < 0 {
		t.Fatalf("both event names must appear, got %q", got)
	}
	if firstIdx > secondIdx {
		t.Error("blocks must keep candidate order")
	}
	if !strings.Contains(got, "\n\n") {
		t.Error("blocks must be blank-line separated")
	}
}

func TestAssembleFallsBackToProjection(t *testing.T) {
	got := Assemble([]retrieval.Candidate{
		{EventId: uuid.New(), Document: "イベント名: 森林保全ワークショップ"},
	})

	if !strings.Contains(got, "森林保全ワークショップ") {
		t.Errorf("projection text must survive when the record is missing, got %q", got)
	}
}

func TestRenderEventFieldBlocks(t *testing.T) {
	startsAt := time.Date(2026, 9, 12, 9, 30, 0, 0, time.Local)
	endsAt := time.Date(2026, 9, 12, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		event    *entity.Event
		contains []string
		excludes []string
	}{
		{
			name: "fully specified event",
			event: &entity.Event{
				Name:             "ビーチクリーン活動",
				Place:            strPtr("〇〇海岸"),
				StartsAt:         &startsAt,
				EndsAt:           &endsAt,
				Fee:              500,
				Capacity:         intPtr(30),
				ShortDescription: "海岸のゴミ拾いイベントです。",
				LongDescription:  strPtr("軍手とゴミ袋は主催者が用意します。"),
			},
			contains: []string{
				"イベント名: ビーチクリーン活動",
				"場所: 〇〇海岸",
				"日時: 2026年9月12日 09:30〜12:00",
				"概要: 海岸のゴミ拾いイベントです。",
				"詳細: 軍手とゴミ袋は主催者が用意します。",
				"参加費: 500円",
				"定員: 30名",
			},
		},
		{
			name: "undecided fields",
			event: &entity.Event{
				Name:             "オンライン傾聴ボランティア",
				ShortDescription: "電話での話し相手",
			},
			contains: []string{
				"場所: 未定",
				"日時: 未定",
				"参加費: 無料",
				"定員: 定員未定",
			},
			excludes: []string{"詳細:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderEvent(tt.event)

			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("rendered block missing %q:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("rendered block must not contain %q:\n%s", unwanted, got)
				}
			}
		})
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	event := &entity.Event{Id: uuid.New(), Name: "公園清掃", ShortDescription: "近所の公園の清掃"}
	candidates := []retrieval.Candidate{{EventId: event.Id, Event: event}}

	if Assemble(candidates) != Assemble(candidates) {
		t.Error("Assemble must be deterministic for the same input")
	}
}
