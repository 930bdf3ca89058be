package constants

// FileStage tracks how far a single document made it through the pipeline.
type FileStage string

// Stable values (these exact strings appear in logs). A failure log carries
// the stage that was running when the file dropped out.
const (
	StagePending       FileStage = "PENDING"        // not started
	StageTextExtracted FileStage = "TEXT_EXTRACTED" // OCR / text layer read
	StageAICalled      FileStage = "AI_CALLED"      // model call in flight
	StageParsed        FileStage = "PARSED"         // JSON recovered from response
	StageNormalized    FileStage = "NORMALIZED"     // records validated and typed
)
