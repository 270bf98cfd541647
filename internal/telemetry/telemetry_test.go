package telemetry

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/sector-sift/internal/classification"
	"github.com/Veraticus/sector-sift/internal/model"
)

type failingClassifier struct{}

func (failingClassifier) Name() string { return "llm" }

func (failingClassifier) Classify(context.Context, model.ClassificationInput) (model.ClassificationResult, error) {
	return model.ClassificationResult{}, errors.New("provider down")
}

func TestInstrument(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	engine, err := classification.NewEngine(classification.DefaultRules())
	require.NoError(t, err)
	clf := m.Instrument(engine)
	assert.Equal(t, "keyword", clf.Name())

	ctx := context.Background()
	_, err = clf.Classify(ctx, model.ClassificationInput{Name: "Acme", Description: "cloud software for teams"})
	require.NoError(t, err)
	_, err = clf.Classify(ctx, model.ClassificationInput{Name: "Candle Co", Description: "hand-poured candles"})
	require.NoError(t, err)

	_, err = m.Instrument(failingClassifier{}).Classify(ctx, model.ClassificationInput{Description: "x"})
	require.Error(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(m.Classifications.WithLabelValues("keyword", OutcomeClassified)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Classifications.WithLabelValues("keyword", OutcomeUnclassified)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Classifications.WithLabelValues("llm", OutcomeError)), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(m.ClassificationDuration))
}

func TestAddBatchRecords(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.AddBatchRecords("keyword", 40)
	m.AddBatchRecords("keyword", 2)
	assert.InDelta(t, 42, testutil.ToFloat64(m.BatchRecords.WithLabelValues("keyword")), 0)
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.AddBatchRecords("keyword", 1)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `sift_batch_records_total{classifier="keyword"} 1`)
}
