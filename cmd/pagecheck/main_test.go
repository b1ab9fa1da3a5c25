package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-unsq/unsq/internal/guardpage"
	"github.com/go-unsq/unsq/simd"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { simd.SetLogger(nil) })
	var out, logs bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPagecheckSweep(t *testing.T) {
	if !guardpage.Supported {
		t.Skip("guard pages are not supported on this platform")
	}
	for _, width := range []string{"128", "256", "512"} {
		out, err := execute(t, "--width", width, "--types", "int8,uint8,uint32,int64", "--max-len", "40")
		require.NoError(t, err, out)
		for _, typ := range []string{"int8", "uint8", "uint32", "int64"} {
			require.Contains(t, out, "ok   "+width+"bit/"+typ)
		}
	}
}

func TestPagecheckRejectsBadFlags(t *testing.T) {
	_, err := execute(t, "--width", "64")
	require.ErrorContains(t, err, "unsupported --width 64")

	_, err = execute(t, "--types", "float32")
	require.ErrorContains(t, err, `unknown lane type "float32"`)

	_, err = execute(t, "--log-level", "loud")
	require.ErrorContains(t, err, "invalid --log-level")
}

func TestCheckersCoverEveryLaneType(t *testing.T) {
	for _, width := range []int{128, 256, 512} {
		sweeps, err := checkersForWidth(width)
		require.NoError(t, err)
		for _, name := range laneTypeNames() {
			require.Contains(t, sweeps, name)
		}
	}
}

func TestPoisonAndDistinct(t *testing.T) {
	require.Equal(t, uint32(0x01010101), poison[uint32]())
	require.Equal(t, int8(1), poison[int8]())
	require.Equal(t, uint64(0x0101010101010101), poison[uint64]())
	require.Equal(t, int16(0x0101), poison[int16]())
	for i := 0; i < 100; i++ {
		require.NotEqual(t, poison[uint8](), distinctFrom(i, poison[uint8]()))
		require.NotZero(t, distinctFrom(i, poison[uint16]()))
	}
}
