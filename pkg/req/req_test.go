package req

import (
	"io"
	"strings"
	"testing"
)

type payload struct {
	Delta int `json:"delta"`
}

func TestDecode(t *testing.T) {
	got, err := Decode[payload](io.NopCloser(strings.NewReader(`{"delta": -10}`)))
	if err != nil || got.Delta != -10 {
		t.Fatalf("Decode = %+v, %v", got, err)
	}

	got, err = Decode[payload](io.NopCloser(strings.NewReader("")))
	if err != nil || got.Delta != 0 {
		t.Fatalf("empty body = %+v, %v", got, err)
	}

	if _, err = Decode[payload](io.NopCloser(strings.NewReader(`{"delta":`))); err == nil {
		t.Fatal("broken body decoded")
	}
}
