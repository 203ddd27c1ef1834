package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	c := NoopCheckHooks{}
	c.OnCheckStart(ctx, "id", "canonical", 10)
	c.OnCheckComplete(ctx, "id", "canonical", true, time.Second, nil)
	c.OnCheckComplete(ctx, "id", "canonical", false, time.Second, errors.New("boom"))
	c.OnCanonicalize(ctx, 10, 22, time.Millisecond)

	k := NoopCacheHooks{}
	k.OnCacheHit(ctx, "cert")
	k.OnCacheMiss(ctx, "verdict")
	k.OnCacheSet(ctx, "cert", 128)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/v1/check")
	h.OnResponse(ctx, "POST", "/v1/check", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Check().(NoopCheckHooks); !ok {
		t.Error("Check() should return NoopCheckHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	checks := &recordingCheckHooks{}
	SetCheckHooks(checks)
	if Check() != checks {
		t.Error("SetCheckHooks should register custom hooks")
	}
	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should register custom hooks")
	}
	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should register custom hooks")
	}

	Check().OnCheckStart(context.Background(), "abc", "backtracking", 4)
	if checks.started != 1 || checks.lastAlgorithm != "backtracking" {
		t.Errorf("recorded %d starts, algorithm %q", checks.started, checks.lastAlgorithm)
	}

	Reset()
	if _, ok := Check().(NoopCheckHooks); !ok {
		t.Error("Reset() should restore NoopCheckHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &recordingCheckHooks{}
	SetCheckHooks(custom)
	SetCheckHooks(nil)
	SetCacheHooks(nil)
	SetHTTPHooks(nil)

	if Check() != custom {
		t.Error("SetCheckHooks(nil) should be ignored")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("SetCacheHooks(nil) should keep the default")
	}
}

type recordingCheckHooks struct {
	NoopCheckHooks
	started       int
	lastAlgorithm string
}

func (r *recordingCheckHooks) OnCheckStart(_ context.Context, _, algorithm string, _ int) {
	r.started++
	r.lastAlgorithm = algorithm
}

type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
