package param

// Editor is the control-side view handed to a descriptor's control update.
// Writes made through Set are staged by the controller and committed only if
// the update succeeds.
type Editor interface {
	// Get returns the current value of id, including staged writes
	Get(id ID) Value
	// Set writes v to id and records id as touched by the update
	Set(id ID, v Value)
}

// Processor is the set of capabilities the realtime engine exposes to
// RealtimeApply. Every method must be non-blocking and allocation-free,
// except LoadModel which swaps the loaded model.
type Processor interface {
	LoadModel(path string) error
	SetTargetSpeaker(index int) error
	SetFormantShift(semitones float64) error
	SetPitchShift(semitones float64) error
	SetInputGain(db float64) error
	SetOutputGain(db float64) error
	SetAverageSourcePitch(pitch float64) error
	SetIntonationIntensity(intensity float64) error
	SetPitchCorrection(amount float64) error
	SetPitchCorrectionType(kind int) error
	SetSpeakerMergeWeight(index int, weight float64) error
}

// ControlFunc validates an edit and cascades it to dependent parameters
type ControlFunc func(e Editor, v Value) error

// ApplyFunc forwards a validated value to the realtime engine
type ApplyFunc func(p Processor, v Value) error
