package lrtable

import (
	"testing"

	"github.com/dekarrin/ictiobus/grammar"
	"github.com/stretchr/testify/assert"
)

func Test_State_AddOrderedActions_ordersShiftBeforeReduces(t *testing.T) {
	assert := assert.New(t)

	shiftTarget := NewState(1, "num")
	emptyProd := grammar.Production{ID: 0, LHS: "E", RHS: nil}
	fullProd := grammar.Production{ID: 1, LHS: "E", RHS: []grammar.Symbol{"num"}}

	s := NewState(0, "")
	s.AddOrderedActions("num", []Action{
		NewReduce(fullProd),
		NewReduce(emptyProd),
		NewShift(shiftTarget),
	})

	acts, ok := s.Actions("num")
	assert.True(ok)
	assert.Len(acts, 3)
	assert.Equal(Shift, acts[0].Kind, "shift must sort first")
	assert.Equal(Reduce, acts[1].Kind)
	assert.True(acts[1].Prod.Empty(), "empty reduce must sort before non-empty reduce")
	assert.Equal(Reduce, acts[2].Kind)
	assert.False(acts[2].Prod.Empty())
}

func Test_State_Terminals_reflectsSetTerminalOrder(t *testing.T) {
	assert := assert.New(t)

	s := NewState(0, "")
	s.SetTerminalOrder([]grammar.Symbol{"kw", "id"}, []bool{true, false})

	assert.Equal([]grammar.Symbol{"kw", "id"}, s.Terminals())
	assert.Equal([]bool{true, false}, s.FinishFlags())
}

func Test_State_Goto(t *testing.T) {
	assert := assert.New(t)

	s := NewState(0, "")
	target := NewState(1, "E")
	s.AddGoto("E", target)

	got, ok := s.Goto("E")
	assert.True(ok)
	assert.Same(target, got)

	_, ok = s.Goto("missing")
	assert.False(ok)
}

func Test_Builder_DetectConflicts(t *testing.T) {
	assert := assert.New(t)

	prodA := grammar.Production{ID: 0, LHS: "E", RHS: []grammar.Symbol{"num"}}
	prodB := grammar.Production{ID: 1, LHS: "T", RHS: []grammar.Symbol{"num"}}

	b := NewBuilder()
	s0 := b.AddState("")
	target := b.AddState("num")

	s0.AddAction("num", NewShift(target))
	s0.AddAction("num", NewReduce(prodA))
	s0.AddAction("+", NewReduce(prodA))
	s0.AddAction("+", NewReduce(prodB))

	b.DetectConflicts(false)

	assert.Len(b.srConflicts, 1)
	assert.Equal(grammar.Symbol("num"), b.srConflicts[0].Symbol)
	assert.Len(b.rrConflicts, 1)
	assert.Equal(grammar.Symbol("+"), b.rrConflicts[0].Symbol)

	table := b.Build()
	assert.Equal(table.SRConflicts(), b.srConflicts)
	assert.Equal(table.RRConflicts(), b.rrConflicts)
}

func Test_NewTable_InitialIsFirstState(t *testing.T) {
	assert := assert.New(t)

	s0 := NewState(0, "")
	s1 := NewState(1, "num")

	table := NewTable([]*State{s0, s1}, nil, nil)

	assert.Same(s0, table.Initial())
	assert.Len(table.States(), 2)
}
