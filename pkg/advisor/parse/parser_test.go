package parse

import (
	"bytes"
	"log"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		wantProse   string
		wantOptions []string
	}{
		{
			name:      "plain prose without options",
			raw:       "おすすめのイベントを紹介します。",
			wantProse: "おすすめのイベントを紹介します。",
		},
		{
			name:        "trailing options fragment",
			raw:         "Some advice.\n{\"options\": [\"a\", \"b\", \"c\", \"d\"]}",
			wantProse:   "Some advice.",
			wantOptions: []string{"a", "b", "c", "d"},
		},
		{
			name:        "options array spanning lines",
			raw:         "概要です。\n{\"options\": [\n\"質問1\",\n\"質問2\",\n\"質問3\",\n\"質問4\"\n]}",
			wantProse:   "概要です。",
			wantOptions: []string{"質問1", "質問2", "質問3", "質問4"},
		},
		{
			name:      "wrong arity treated as absent",
			raw:       "Advice.\n{\"options\": [\"a\", \"b\"]}",
			wantProse: "Advice.\n{\"options\": [\"a\", \"b\"]}",
		},
		{
			name:      "wrong arity keeps surrounding whitespace",
			raw:       "  Advice.\n{\"options\": [\"a\", \"b\"]}  ",
			wantProse: "  Advice.\n{\"options\": [\"a\", \"b\"]}  ",
		},
		{
			name:      "no fragment keeps surrounding whitespace",
			raw:       "\n  おすすめを紹介します。\n",
			wantProse: "\n  おすすめを紹介します。\n",
		},
		{
			name:      "malformed json treated as absent",
			raw:       "Advice.\n{\"options\": [\"a\", \"b\", \"c\", 4]}",
			wantProse: "Advice.\n{\"options\": [\"a\", \"b\", \"c\", 4]}",
		},
		{
			name:        "last fragment wins",
			raw:         "{\"options\": [\"x\", \"y\", \"z\", \"w\"]} later text {\"options\": [\"a\", \"b\", \"c\", \"d\"]}",
			wantProse:   "{\"options\": [\"x\", \"y\", \"z\", \"w\"]} later text",
			wantOptions: []string{"a", "b", "c", "d"},
		},
		{
			name:      "empty input",
			raw:       "",
			wantProse: "",
		},
		{
			name:        "options only",
			raw:         "{\"options\": [\"a\", \"b\", \"c\", \"d\"]}",
			wantProse:   "",
			wantOptions: []string{"a", "b", "c", "d"},
		},
		{
			name:        "whitespace inside fragment",
			raw:         "まとめです。\n{ \"options\" : [ \"1\", \"2\", \"3\", \"4\" ] }",
			wantProse:   "まとめです。",
			wantOptions: []string{"1", "2", "3", "4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := Parse(tt.raw)

			if reply.Prose != tt.wantProse {
				t.Errorf("Prose = %q, want %q", reply.Prose, tt.wantProse)
			}

			if !reflect.DeepEqual(reply.Options, tt.wantOptions) {
				t.Errorf("Options = %v, want %v", reply.Options, tt.wantOptions)
			}
		})
	}
}

func TestParserLogsUnusableFragments(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "malformed json",
			raw:  "Advice.\n{\"options\": [\"a\", \"b\", \"c\", 4]}",
		},
		{
			name: "wrong arity",
			raw:  "Advice.\n{\"options\": [\"a\", \"b\"]}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			parser := NewParser(log.New(&buf, "", 0))

			reply := parser.Parse(tt.raw)

			if reply.Prose != tt.raw {
				t.Errorf("Prose = %q, want raw unchanged", reply.Prose)
			}
			if reply.Options != nil {
				t.Errorf("Options = %v, want nil", reply.Options)
			}
			if buf.Len() == 0 {
				t.Error("expected the unusable fragment to be logged")
			}
		})
	}
}

func TestParserNilLoggerIsSafe(t *testing.T) {
	reply := NewParser(nil).Parse("Advice.\n{\"options\": [\"a\", \"b\"]}")
	if reply.Options != nil {
		t.Errorf("Options = %v, want nil", reply.Options)
	}
}
