package model

// AcquisitionMode enregistre le palier de la chaîne de transcription qui a abouti.
type AcquisitionMode string

const (
	AcquisitionManual       AcquisitionMode = "manual"
	AcquisitionGenerated    AcquisitionMode = "generated"
	AcquisitionFallback     AcquisitionMode = "fallback"
	AcquisitionUserSupplied AcquisitionMode = "user_supplied"
	AcquisitionUnavailable  AcquisitionMode = "unavailable"
)

// TranscriptHandle référence une piste listée par un fournisseur, sans son contenu.
type TranscriptHandle struct {
	Language  string
	Generated bool
	// Ref est opaque pour la chaîne : URL de la piste, identifiant fournisseur...
	Ref string
}

// TranscriptLine : une ligne horodatée (offset en secondes depuis le début).
type TranscriptLine struct {
	Offset float64
	Text   string
}

// TranscriptResult est le produit de la chaîne de transcription.
// Lines est trié par Offset et n'est plus modifié après le fetch.
type TranscriptResult struct {
	Lines        []TranscriptLine
	LanguageUsed string
	Mode         AcquisitionMode
}

// Available indique si un contenu exploitable a été obtenu.
func (r TranscriptResult) Available() bool {
	return r.Mode != AcquisitionUnavailable && r.Mode != ""
}

// AnalysisMode distingue un prompt brut d'une analyse produite par le LLM.
type AnalysisMode string

const (
	ModePrompt   AnalysisMode = "prompt"
	ModeAnalysis AnalysisMode = "analysis"
)

// Status est l'issue du traitement d'une vidéo.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// AnalysisResult est produit par l'analyseur et consommé une seule fois par la sortie.
type AnalysisResult struct {
	VideoTitle string
	VideoURL   string
	Body       string
	Mode       AnalysisMode
	Status     Status
	Err        string
	Transcript AcquisitionMode
}

// Destination d'une analyse.
type Destination string

const (
	DestinationFile       Destination = "file"
	DestinationClipboard  Destination = "clipboard"
	DestinationChatThread Destination = "chat_thread"
)

// ParseDestination convertit une valeur de configuration, "" si inconnue.
func ParseDestination(s string) Destination {
	switch Destination(s) {
	case DestinationFile, DestinationClipboard, DestinationChatThread:
		return Destination(s)
	}
	return ""
}

// DeliveryResult rend compte d'une livraison.
type DeliveryResult struct {
	Destination Destination
	Success     bool
	Detail      string
}
