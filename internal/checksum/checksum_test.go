package checksum

import (
	"strings"
	"testing"
)

func TestSumReaderMatchesSum(t *testing.T) {
	data := "corpus archive bytes"
	got, n, err := SumReader(strings.NewReader(data))
	if err != nil {
		t.Fatalf("SumReader: %v", err)
	}
	if n != int64(len(data)) {
		t.Errorf("n = %d, want %d", n, len(data))
	}
	if want := Sum([]byte(data)); got != want {
		t.Errorf("digest = %s, want %s", got, want)
	}
}

func TestSumEmpty(t *testing.T) {
	const empty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got := Sum(nil); got != empty {
		t.Errorf("Sum(nil) = %s", got)
	}
}
