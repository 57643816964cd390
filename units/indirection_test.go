package units_test

import (
	"testing"

	"github.com/dargueta/v6fs/units"
	"github.com/stretchr/testify/assert"
)

func TestClassify_Direct(t *testing.T) {
	assert.Equal(t, units.Indirection{Kind: units.Direct, DirectIndex: 0}, units.Classify(0))
	assert.Equal(
		t,
		units.Indirection{Kind: units.Direct, DirectIndex: int(units.DirectBlocksMax)},
		units.Classify(units.DirectBlocksMax),
	)
}

func TestClassify_SinglyBoundaries(t *testing.T) {
	first := units.Classify(units.DirectBlocksMax + 1)
	assert.Equal(t, units.Singly, first.Kind)

	last := units.Classify(units.SinglyIndirectMax)
	assert.Equal(t, units.Singly, last.Kind)
}

func TestClassify_DoublyBoundaries(t *testing.T) {
	first := units.Classify(units.SinglyIndirectMax + 1)
	assert.Equal(t, units.Doubly, first.Kind)

	last := units.Classify(units.DoublyIndirectMax)
	assert.Equal(t, units.Doubly, last.Kind)
}

func TestClassify_TriplyBoundaries(t *testing.T) {
	first := units.Classify(units.DoublyIndirectMax + 1)
	assert.Equal(t, units.Triply, first.Kind)

	last := units.Classify(units.TriplyIndirectMax)
	assert.Equal(t, units.Triply, last.Kind)
}

func TestClassify_OutOfRange(t *testing.T) {
	assert.Equal(t, units.OutOfRange, units.Classify(units.TriplyIndirectMax+1).Kind)
	assert.Equal(t, units.OutOfRange, units.Classify(units.TriplyIndirectMax+42).Kind)
}

// TestClassify_WorkedVectors pins down the exact slot numbers spec.md's S2-S4
// scenarios require, which is what fixes the off-by-one convention described
// in Classify's doc comment.
func TestClassify_WorkedVectors(t *testing.T) {
	singly := units.Classify(units.DirectBlocksMax + 42)
	assert.Equal(t, units.Singly, singly.Kind)
	assert.Equal(t, 42, singly.SinglyIndex)

	doubly := units.Classify(units.SinglyIndirectMax + 42)
	assert.Equal(t, units.Doubly, doubly.Kind)
	assert.Equal(t, 0, doubly.DoublyIndex)
	assert.Equal(t, 42, doubly.SinglyIndex)

	triply := units.Classify(units.DoublyIndirectMax + 42)
	assert.Equal(t, units.Triply, triply.Kind)
	assert.Equal(t, 0, triply.TriplyIndex)
	assert.Equal(t, 0, triply.DoublyIndex)
	assert.Equal(t, 42, triply.SinglyIndex)
}

func TestBlockPointerRoundTrip(t *testing.T) {
	assert.Nil(t, units.DecodeBlockPointer(0))
	assert.Equal(t, uint64(0), units.EncodeBlockPointer(nil))

	for _, v := range []units.Block{0, 1, 100, 1 << 40} {
		v := v
		encoded := units.EncodeBlockPointer(&v)
		decoded := units.DecodeBlockPointer(encoded)
		if assert.NotNil(t, decoded) {
			assert.Equal(t, v, *decoded)
		}
	}
}
