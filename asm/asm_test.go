package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLowercasesAndStripsComments(t *testing.T) {
	p := Parse("MOV 1, ACC # load one\nNOP")
	assert.Len(t, p.Lines, 2)
	assert.Equal(t, "mov 1, acc", p.Lines[0].Text)
	assert.Equal(t, "nop", p.Lines[1].Text)
}

func TestParseLabelOnOwnLine(t *testing.T) {
	p := Parse("jmp l\nadd 10\nl:\nadd 5")
	assert.Equal(t, 2, p.Labels["l"])
	assert.Equal(t, "jmp l", p.Lines[0].Text)
	assert.Equal(t, "add 10", p.Lines[1].Text)
	assert.True(t, p.Lines[2].Blank())
	assert.Equal(t, "add 5", p.Lines[3].Text)
}

func TestParseLabelBeforeInstructionOnSameLine(t *testing.T) {
	p := Parse("start: add 1")
	assert.Equal(t, 0, p.Labels["start"])
	assert.Equal(t, "add 1", p.Lines[0].Text)
}

func TestParseLabelFollowedByBlankLines(t *testing.T) {
	p := Parse("jmp l\nadd 10\nl:\n\n\nadd 5")
	assert.Equal(t, 2, p.Labels["l"])
	assert.True(t, p.Lines[2].Blank())
	assert.True(t, p.Lines[3].Blank())
	assert.True(t, p.Lines[4].Blank())
	assert.Equal(t, "add 5", p.Lines[5].Text)
}

func TestParseEmptyLineIsBlankSlot(t *testing.T) {
	p := Parse("add 1\n\nadd 2")
	assert.True(t, p.Lines[1].Blank())
}

func TestParseCommentOnlyLineIsBlank(t *testing.T) {
	p := Parse("# just a comment")
	assert.True(t, p.Lines[0].Blank())
}
