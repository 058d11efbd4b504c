package utils

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "abc")

	got, ok := GetRequestIDFromContext(ctx)
	if !ok || got != "abc" {
		t.Errorf("expected abc, got %q (ok=%v)", got, ok)
	}

	if _, ok := GetRequestIDFromContext(context.Background()); ok {
		t.Error("expected no request ID on a bare context")
	}
}
