package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzerResult_Empty(t *testing.T) {
	r := NewAnalyzerResult()
	assert.Zero(t, r.Len())
	assert.Empty(t, r.String())
	assert.Empty(t, r.HTML())
}

func TestAnalyzerResult_ConcatenatesInOrder(t *testing.T) {
	r := NewAnalyzerResult()
	r.Add(&TextResult{Text: "A", Div: "<div>A</div>"})
	r.Add(&TextResult{Text: "B", Div: "<div>B</div>"})
	r.Add(&TextResult{Text: "A", Div: "<div>A</div>"})

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, "ABA", r.String())
	assert.Equal(t, "<div>A</div><div>B</div><div>A</div>", r.HTML())
}

func TestAnalyzerResult_SubResultsCopied(t *testing.T) {
	r := NewAnalyzerResult()
	r.Add(&TextResult{Text: "A"})

	subs := r.SubResults()
	subs[0] = &TextResult{Text: "mutated"}
	assert.Equal(t, "A", r.String())
}
