package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

// ContentMetrics counts editor writes, public form posts and uploads
type ContentMetrics struct {
	writes      *Counter
	submissions *Counter
	uploads     *Counter
	uploadBytes *Histogram
	subscribers metric.Int64UpDownCounter
}

// NewContentMetrics registers the site instruments on the meter
func NewContentMetrics(meter metric.Meter) (*ContentMetrics, error) {
	writes, err := NewCounter(meter, "site.content.writes", "Content writes by collection and action", "{write}")
	if err != nil {
		return nil, err
	}
	submissions, err := NewCounter(meter, "site.form.submissions", "Public form submissions", "{submission}")
	if err != nil {
		return nil, err
	}
	uploads, err := NewCounter(meter, "site.media.uploads", "Image and icon uploads by outcome", "{upload}")
	if err != nil {
		return nil, err
	}
	uploadBytes, err := NewHistogram(meter, "site.media.upload_size", "Stored image size", "By", UploadSizeBuckets)
	if err != nil {
		return nil, err
	}
	subscribers, err := meter.Int64UpDownCounter("site.live.subscribers",
		metric.WithDescription("Open live update streams"),
		metric.WithUnit("{stream}"))
	if err != nil {
		return nil, err
	}
	return &ContentMetrics{
		writes:      writes,
		submissions: submissions,
		uploads:     uploads,
		uploadBytes: uploadBytes,
		subscribers: subscribers,
	}, nil
}

// RecordWrite counts one successful content write
func (m *ContentMetrics) RecordWrite(ctx context.Context, collection, action string) {
	if m == nil {
		return
	}
	m.writes.Inc(ctx, AttrCollection.String(collection), AttrAction.String(action))
}

// RecordSubmission counts one public form post
func (m *ContentMetrics) RecordSubmission(ctx context.Context, form string) {
	if m == nil {
		return
	}
	m.submissions.Inc(ctx, AttrFormKind.String(form))
}

// RecordUpload counts an upload attempt and, on success, its stored size
func (m *ContentMetrics) RecordUpload(ctx context.Context, outcome string, size int) {
	if m == nil {
		return
	}
	m.uploads.Inc(ctx, AttrOutcome.String(outcome))
	if outcome == "ok" {
		m.uploadBytes.Record(ctx, float64(size))
	}
}

// StreamOpened and StreamClosed track open live update streams
func (m *ContentMetrics) StreamOpened(ctx context.Context) {
	if m == nil {
		return
	}
	m.subscribers.Add(ctx, 1)
}

// StreamClosed decrements the open stream gauge
func (m *ContentMetrics) StreamClosed(ctx context.Context) {
	if m == nil {
		return
	}
	m.subscribers.Add(ctx, -1)
}
