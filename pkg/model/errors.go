package model

import "errors"

// Erreurs partagées par tous les composants. Les appelants testent avec errors.Is.
var (
	// ErrNotFound : ID ou URL invalide, vidéo absente, playlist vide.
	ErrNotFound = errors.New("not found")
	// ErrTranscriptsDisabled : le fournisseur indique que les sous-titres sont désactivés.
	ErrTranscriptsDisabled = errors.New("transcripts disabled for this video")
	// ErrNoTranscript : aucune piste dans la langue demandée.
	ErrNoTranscript = errors.New("no transcript for requested language")
	// ErrTransport : échec réseau ou API d'un collaborateur externe.
	ErrTransport = errors.New("transport error")
	// ErrUserCancelled : l'opérateur a refusé de fournir une transcription manuelle.
	ErrUserCancelled = errors.New("cancelled by user")
	// ErrConfiguration : identifiants manquants ou configuration invalide.
	ErrConfiguration = errors.New("configuration error")
	// ErrBatchNeedsFile : un lot a été demandé sans sortie durable.
	ErrBatchNeedsFile = errors.New("batch processing requires file output")
)
