package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAuth(t *testing.T) {
	before := testutil.ToFloat64(AuthAttemptsTotal.WithLabelValues(ActionLogin, ResultRejected))
	RecordAuth(ActionLogin, ResultRejected)
	after := testutil.ToFloat64(AuthAttemptsTotal.WithLabelValues(ActionLogin, ResultRejected))
	if after-before != 1 {
		t.Errorf("login rejected counter: got delta %v, want 1", after-before)
	}
}

func TestAuthRejected(t *testing.T) {
	before := testutil.ToFloat64(AuthAttemptsTotal.WithLabelValues(ActionRegister, ResultInvalid))
	AuthRejected(ActionRegister)(nil)
	after := testutil.ToFloat64(AuthAttemptsTotal.WithLabelValues(ActionRegister, ResultInvalid))
	if after-before != 1 {
		t.Errorf("register invalid counter: got delta %v, want 1", after-before)
	}
}

func TestRecordRequest(t *testing.T) {
	RecordRequest("GET", "/articles", 200, 0.01)
	if got := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/articles", "200")); got < 1 {
		t.Errorf("request counter: got %v", got)
	}
}

func TestIncArticlesCreated(t *testing.T) {
	before := testutil.ToFloat64(ArticlesCreatedTotal)
	IncArticlesCreated()
	if got := testutil.ToFloat64(ArticlesCreatedTotal); got-before != 1 {
		t.Errorf("articles counter delta: got %v, want 1", got-before)
	}
}
