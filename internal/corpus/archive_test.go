package corpus

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/anyt/internal/corpus/corpustest"
)

func TestEntries_XMLMembersInOrder(t *testing.T) {
	data := corpustest.TGZ(t,
		corpustest.Entry{Name: "01/01/1.xml", Data: []byte("<a/>")},
		corpustest.Entry{Name: "01/01/README.txt", Data: []byte("skip me")},
		corpustest.Entry{Name: "01/02/2.xml", Data: []byte("<b/>")},
	)

	var names []string
	err := Entries(context.Background(), bytes.NewReader(data), func(e Entry) error {
		names = append(names, e.Name)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"01/01/1.xml", "01/02/2.xml"}, names)
}

func TestEntries_StopsOnCallbackError(t *testing.T) {
	data := corpustest.TGZ(t, corpustest.Entries(
		corpustest.Doc{GUID: 1}, corpustest.Doc{GUID: 2}, corpustest.Doc{GUID: 3},
	)...)
	stop := errors.New("stop")

	calls := 0
	err := Entries(context.Background(), bytes.NewReader(data), func(Entry) error {
		calls++
		if calls == 2 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	assert.Equal(t, 2, calls)
}

func TestEntries_CancelledContext(t *testing.T) {
	data := corpustest.TGZ(t, corpustest.Entries(corpustest.Doc{GUID: 1})...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Entries(ctx, bytes.NewReader(data), func(Entry) error {
		t.Fatal("callback must not run")
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestEntries_NotGzip(t *testing.T) {
	err := Entries(context.Background(), bytes.NewReader([]byte("plain text")), func(Entry) error { return nil })
	require.Error(t, err)
}
