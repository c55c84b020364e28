package model

import (
	"fmt"
	"strings"
	"time"
)

// ReportItem : une entrée par vidéo, quelle que soit son issue.
type ReportItem struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// BatchReport est détenu par l'orchestrateur, puis figé par Finalize.
// Successful+Failed+Cancelled <= Total en cours de lot, == Total une fois figé
// sur un lot complet.
type BatchReport struct {
	RunID      string       `json:"run_id"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at,omitzero"`
	Total      int          `json:"total"`
	Successful int          `json:"successful"`
	Failed     int          `json:"failed"`
	Cancelled  int          `json:"cancelled"`
	Items      []ReportItem `json:"items"`

	finalized bool
}

// NewBatchReport prépare un rapport pour total vidéos.
func NewBatchReport(runID string, total int) *BatchReport {
	return &BatchReport{
		RunID:     runID,
		StartedAt: time.Now(),
		Total:     total,
		Items:     make([]ReportItem, 0, total),
	}
}

// Record ajoute une entrée et met à jour le compteur correspondant.
// Sans effet une fois le rapport figé.
func (r *BatchReport) Record(item ReportItem) {
	if r.finalized {
		return
	}
	r.Items = append(r.Items, item)
	switch item.Status {
	case StatusSuccess:
		r.Successful++
	case StatusCancelled:
		r.Cancelled++
	default:
		r.Failed++
	}
}

// Finalize fige le rapport.
func (r *BatchReport) Finalize() {
	if r.finalized {
		return
	}
	r.FinishedAt = time.Now()
	r.finalized = true
}

// Complete indique si chaque vidéo a reçu une entrée.
func (r *BatchReport) Complete() bool {
	return r.Successful+r.Failed+r.Cancelled == r.Total
}

// FailedItems retourne les entrées en échec, dans l'ordre du lot.
func (r *BatchReport) FailedItems() []ReportItem {
	var out []ReportItem
	for _, it := range r.Items {
		if it.Status == StatusFailed {
			out = append(out, it)
		}
	}
	return out
}

// Summary retourne le décompte lisible du lot.
func (r *BatchReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d successful, %d failed, %d cancelled, %d total", r.Successful, r.Failed, r.Cancelled, r.Total)
	if !r.Complete() {
		fmt.Fprintf(&b, " (%d not processed)", r.Total-r.Successful-r.Failed-r.Cancelled)
	}
	return b.String()
}
