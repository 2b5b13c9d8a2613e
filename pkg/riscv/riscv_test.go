package riscv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupSpecKnown(t *testing.T) {
	for id := LUI; id <= RET; id++ {
		_, ok := LookupSpec(id)
		assert.Truef(t, ok, "LookupSpec(%s)", id)
	}
}

func TestLookupSpecUnknown(t *testing.T) {
	_, ok := LookupSpec(InstID(-1))
	assert.False(t, ok)
}

func TestStringKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "add", ADD.String())
	assert.Equal(t, "inst(?)", InstID(-1).String())
}

func TestFormatString(t *testing.T) {
	cases := map[Format]string{
		FormatR: "R", FormatI: "I", FormatS: "S",
		FormatB: "B", FormatU: "U", FormatJ: "J",
		Format(99): "unknown",
	}
	for f, want := range cases {
		assert.Equal(t, want, f.String())
	}
}

func TestShiftImmediatesAreRFormat(t *testing.T) {
	for _, id := range []InstID{SLLI, SRLI, SRAI} {
		spec, ok := LookupSpec(id)
		require.Truef(t, ok, "LookupSpec(%s)", id)
		assert.Equalf(t, FormatR, spec.Format, "%s format", id)
	}
}

func TestPseudoOpsShareBaseEncodings(t *testing.T) {
	jal, _ := LookupSpec(JAL)
	j, _ := LookupSpec(J)
	assert.Equal(t, jal, j, "J reuses JAL's encoding")

	jalr, _ := LookupSpec(JALR)
	jr, _ := LookupSpec(JR)
	ret, _ := LookupSpec(RET)
	assert.Equal(t, jalr, jr, "JR reuses JALR's encoding")
	assert.Equal(t, jalr, ret, "RET reuses JALR's encoding")
}
