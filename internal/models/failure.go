package models

// FailureStage names the pipeline step at which an asset was abandoned.
type FailureStage string

const (
	StageResolve  FailureStage = "resolve"
	StageRetrieve FailureStage = "retrieve"
	StageWrite    FailureStage = "write"
)

// AssetFailure is an isolated, non-fatal failure of one asset.
type AssetFailure struct {
	RawRef     string        `json:"raw_ref"`
	Category   AssetCategory `json:"category"`
	URL        string        `json:"url,omitempty"`
	Stage      FailureStage  `json:"stage"`
	StatusCode int           `json:"status_code,omitempty"`
	Err        error         `json:"-"`
	Message    string        `json:"message"`
}

// NewAssetFailure builds a failure record for ref
func NewAssetFailure(ref AssetReference, location string, stage FailureStage, statusCode int, err error) AssetFailure {
	f := AssetFailure{
		RawRef:     ref.Raw,
		Category:   ref.Category,
		URL:        location,
		Stage:      stage,
		StatusCode: statusCode,
		Err:        err,
	}
	if err != nil {
		f.Message = err.Error()
	}
	return f
}

func (f AssetFailure) Error() string {
	return string(f.Stage) + " " + f.RawRef + ": " + f.Message
}

func (f AssetFailure) Unwrap() error {
	return f.Err
}
