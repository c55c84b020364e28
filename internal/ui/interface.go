package ui

import (
	"context"

	"github.com/patrickprogramme/ytbrief/pkg/model"
)

type Interface interface {
	// GetYtURLs doit renvoyer au moins une URL valide.
	// Implémentation terminale : priorité clipboard -> prompt
	GetYtURLs(ctx context.Context) ([]string, error)

	// WaitForExit bloque jusqu'à ce qu'un signal d'annulation soit reçu via ctx (Ctrl+C).
	WaitForExit(ctx context.Context) error

	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)
	PrintItem(ctx context.Context, index, total int, item model.ReportItem)
	PrintSummary(ctx context.Context, report *model.BatchReport)
}
