package notification

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorst(t *testing.T) {
	tests := []struct {
		name     string
		notices  []Notice
		expected Level
	}{
		{name: "no notices", notices: nil, expected: LevelSuccess},
		{name: "only success", notices: []Notice{Success("ok")}, expected: LevelSuccess},
		{name: "warning beats success", notices: []Notice{Success("ok"), Warning("low")}, expected: LevelWarning},
		{name: "error beats warning", notices: []Notice{Error("boom"), Warning("low")}, expected: LevelError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Worst(tt.notices))
		})
	}
}

func TestContextForwardsToRecorder(t *testing.T) {
	recorder := NewRecorder()
	c := WithRecorder(context.Background(), recorder)

	Context{}.Notify(c, Warning("Quantidade solicitada fora de estoque"))
	Context{}.Notify(context.Background(), Error("dropped without recorder"))

	assert.Equal(t, []Notice{Warning("Quantidade solicitada fora de estoque")}, recorder.Notices())
}

func TestChain(t *testing.T) {
	first, second := NewRecorder(), NewRecorder()
	var out bytes.Buffer

	Chain(first, second, Writer{Out: &out}, Log{}, Metric{}).Notify(context.Background(), Success("Produto adicionado ao carrinho"))

	assert.Equal(t, first.Notices(), second.Notices())
	last, ok := first.Last()
	assert.True(t, ok)
	assert.Equal(t, Success("Produto adicionado ao carrinho"), last)
	assert.Equal(t, "[success] Produto adicionado ao carrinho\n", out.String())
}
