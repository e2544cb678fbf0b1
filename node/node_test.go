package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddThenSave(t *testing.T) {
	n := New("add 1\nsav")
	assert.NoError(t, n.StepMany(2))
	assert.Equal(t, 1, n.ACC)
	assert.Equal(t, 1, n.BAK)
	assert.Equal(t, 0, n.PC)
}

func TestAddNilSubNilAreNops(t *testing.T) {
	n := New("add 5\nadd nil\nsub nil")
	assert.NoError(t, n.StepMany(3))
	assert.Equal(t, 5, n.ACC)
	assert.Equal(t, 0, n.PC)
}

func TestAddAddSaveWrapsProgram(t *testing.T) {
	n := New("add 1\nadd 2\nsav")
	assert.NoError(t, n.StepMany(6))
	assert.Equal(t, 6, n.ACC)
	assert.Equal(t, 6, n.BAK)
	assert.Equal(t, 0, n.PC)
}

func TestSaveThenNeg(t *testing.T) {
	n := New("add 12\nsav\nneg")
	assert.NoError(t, n.StepMany(3))
	assert.Equal(t, -12, n.ACC)
	assert.Equal(t, 12, n.BAK)
	assert.Equal(t, 0, n.PC)
}

func TestMovLiteralToAcc(t *testing.T) {
	n := New("mov 12, acc\nnop")
	assert.NoError(t, n.StepMany(1))
	assert.Equal(t, 12, n.ACC)
	assert.Equal(t, 1, n.PC)
}

func TestJroSkipsForwardByAccOffset(t *testing.T) {
	n := New("add 3\njro acc\nadd 100\nadd 200\nadd 300")
	assert.NoError(t, n.StepMany(3))
	assert.Equal(t, 303, n.ACC)
	assert.Equal(t, 0, n.PC)
}

func TestJumpThenFallThrough(t *testing.T) {
	for _, src := range []string{
		"jmp l\nadd 10\nl: add 5",
		"jmp l\nadd 10\nl:\nadd 5",
		"jmp l\nadd 10\nl:\n\n\nadd 5",
	} {
		n := New(src)
		assert.NoError(t, n.StepMany(2))
		assert.Equal(t, 5, n.ACC)
		assert.Equal(t, 0, n.PC)
		assert.EqualValues(t, 2, n.Cycle)
	}
}

func TestSwapRoundTrip(t *testing.T) {
	n := New("add 7\nsav\nadd 3\nswp\nswp")
	// acc=7, bak=7 ; acc=10 ; swp -> acc=7,bak=10 ; swp -> acc=10,bak=7
	assert.NoError(t, n.StepMany(5))
	assert.Equal(t, 10, n.ACC)
	assert.Equal(t, 7, n.BAK)
}

func TestSaturatingArithmeticClampsAtBounds(t *testing.T) {
	n := New("add 999\nadd 999")
	assert.NoError(t, n.StepMany(2))
	assert.Equal(t, 999, n.ACC)
}

func TestNegativeSaturation(t *testing.T) {
	n := New("sub 999\nsub 999")
	assert.NoError(t, n.StepMany(2))
	assert.Equal(t, -999, n.ACC)
}

func TestUnknownLabelIsRuntimeError(t *testing.T) {
	n := New("jmp nowhere")
	err := n.Step()
	assert.Error(t, err)
	var unk *UnknownLabelError
	assert.ErrorAs(t, err, &unk)
	assert.ErrorIs(t, err, ErrUnknownLabel)
}

func TestIllegalInstructionIsDecodeTimeError(t *testing.T) {
	n := New("frobnicate")
	err := n.Step()
	assert.Error(t, err)
}

func TestConstructorSkipsLeadingLabelOnlyLine(t *testing.T) {
	n := New("start:\nadd 1")
	assert.Equal(t, 1, n.PC)
}

func TestRegistersStayInRangeAcrossManySteps(t *testing.T) {
	n := New("add 500\nsub 1000\nsav\nswp")
	for i := 0; i < 200; i++ {
		assert.NoError(t, n.Step())
		assert.GreaterOrEqual(t, n.ACC, -999)
		assert.LessOrEqual(t, n.ACC, 999)
		assert.GreaterOrEqual(t, n.BAK, -999)
		assert.LessOrEqual(t, n.BAK, 999)
	}
}
