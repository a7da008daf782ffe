package input

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/go-kit/log"
)

func TestParsePress(t *testing.T) {
	tests := []struct {
		line    string
		want    Press
		wantErr bool
	}{
		{"3 4", Press{3, 4}, false},
		{"0,7", Press{0, 7}, false},
		{" 2\t9 ", Press{2, 9}, false},
		{"1", Press{}, true},
		{"a b", Press{}, true},
		{"1 2 3", Press{}, true},
	}
	for _, tt := range tests {
		got, err := ParsePress(tt.line)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePress(%q) err = %v, wantErr %v", tt.line, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePress(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

func TestLineSourcePollsUntilEOF(t *testing.T) {
	src := NewLineSource(strings.NewReader("1 2\n\nbogus\n3,4\n"), log.NewNopLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var got []Press
	for {
		batch, err := src.Poll(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, batch...)
	}

	want := []Press{{1, 2}, {3, 4}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("press %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	// exhausted sources keep reporting EOF
	if _, err := src.Poll(ctx); err != io.EOF {
		t.Errorf("second Poll after EOF: %v", err)
	}
}

func TestLineSourcePollHonoursContext(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	src := NewLineSource(r, log.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := src.Poll(ctx); err != context.Canceled {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
