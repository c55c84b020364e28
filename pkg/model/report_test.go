package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchReportCounters(t *testing.T) {
	r := NewBatchReport("run", 3)
	r.Record(ReportItem{URL: "a", Status: StatusSuccess})
	assert.False(t, r.Complete())
	assert.Contains(t, r.Summary(), "(2 not processed)")

	r.Record(ReportItem{URL: "b", Status: StatusCancelled})
	r.Record(ReportItem{URL: "c", Status: StatusFailed, Detail: "boom"})
	r.Finalize()

	assert.Equal(t, 1, r.Successful)
	assert.Equal(t, 1, r.Cancelled)
	assert.Equal(t, 1, r.Failed)
	assert.True(t, r.Complete())
	assert.Equal(t, "1 successful, 1 failed, 1 cancelled, 3 total", r.Summary())
	assert.Equal(t, []ReportItem{{URL: "c", Status: StatusFailed, Detail: "boom"}}, r.FailedItems())

	// figé : plus d'ajout
	r.Record(ReportItem{URL: "d", Status: StatusSuccess})
	assert.Len(t, r.Items, 3)
}
