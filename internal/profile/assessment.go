package profile

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// AssessmentResults is the loosely-typed record produced by the assessment
// UI. Every field is optional; Normalize fills the gaps.
//
// Recognized keys: accuracy, avgResponseTime, sessionDuration,
// attentionDecay, taskSwitching, memoryLoad, processingSpeed, and errors
// (an object of per-style error counts keyed by learning style).
type AssessmentResults map[string]any

// Assessment keys.
const (
	KeyAccuracy        = "accuracy"
	KeyAvgResponseTime = "avgResponseTime"
	KeySessionDuration = "sessionDuration"
	KeyAttentionDecay  = "attentionDecay"
	KeyTaskSwitching   = "taskSwitching"
	KeyMemoryLoad      = "memoryLoad"
	KeyProcessingSpeed = "processingSpeed"
	KeyErrors          = "errors"
)

// Assessment is the fully-populated form of AssessmentResults.
type Assessment struct {
	Accuracy        float64 // ratio of correct answers, 0-1
	AvgResponseTime float64 // seconds
	SessionDuration float64 // minutes
	AttentionDecay  float64 // fraction of attention lost over the session
	TaskSwitching   float64 // 0-1
	MemoryLoad      float64 // 0-1
	ProcessingSpeed float64 // 0-1
	Errors          map[LearningStyle]float64
}

// DefaultAssessment holds the value used for every missing or malformed
// field.
func DefaultAssessment() Assessment {
	return Assessment{
		Accuracy:        0.75,
		AvgResponseTime: 30,
		SessionDuration: 25,
		AttentionDecay:  0.1,
		TaskSwitching:   0.5,
		MemoryLoad:      0.5,
		ProcessingSpeed: 0.5,
		Errors: map[LearningStyle]float64{
			StyleVisual:      0,
			StyleAuditory:    0,
			StyleKinesthetic: 0,
			StyleReading:     0,
		},
	}
}

// ParseAssessmentResults decodes a JSON object into AssessmentResults.
// Numbers are kept as json.Number so integer counts survive intact.
func ParseAssessmentResults(data []byte) (AssessmentResults, error) {
	var out AssessmentResults
	if err := decodeJSON(data, &out); err != nil {
		return nil, fmt.Errorf("parse assessment results: %w", err)
	}
	if out == nil {
		out = AssessmentResults{}
	}
	return out, nil
}

// Normalize reads every field with its default fallback. It never fails:
// non-numeric, NaN or infinite values are treated as missing.
func (r AssessmentResults) Normalize() Assessment {
	a := DefaultAssessment()

	a.Accuracy = numberOr(r[KeyAccuracy], a.Accuracy)
	a.AvgResponseTime = numberOr(r[KeyAvgResponseTime], a.AvgResponseTime)
	a.SessionDuration = numberOr(r[KeySessionDuration], a.SessionDuration)
	a.AttentionDecay = numberOr(r[KeyAttentionDecay], a.AttentionDecay)
	a.TaskSwitching = numberOr(r[KeyTaskSwitching], a.TaskSwitching)
	a.MemoryLoad = numberOr(r[KeyMemoryLoad], a.MemoryLoad)
	a.ProcessingSpeed = numberOr(r[KeyProcessingSpeed], a.ProcessingSpeed)

	errs := reflect.ValueOf(r[KeyErrors])
	if errs.Kind() == reflect.Map && errs.Type().Key().Kind() == reflect.String {
		for _, style := range LearningStyles() {
			v := errs.MapIndex(reflect.ValueOf(string(style)).Convert(errs.Type().Key()))
			if v.IsValid() {
				a.Errors[style] = numberOr(v.Interface(), a.Errors[style])
			}
		}
	}
	return a
}

// numberOr accepts any Go numeric kind or a json.Number.
func numberOr(v any, def float64) float64 {
	var f float64
	if n, ok := v.(json.Number); ok {
		parsed, err := n.Float64()
		if err != nil {
			return def
		}
		f = parsed
	} else {
		rv := reflect.ValueOf(v)
		switch {
		case !rv.IsValid():
			return def
		case rv.CanFloat():
			f = rv.Float()
		case rv.CanInt():
			f = float64(rv.Int())
		case rv.CanUint():
			f = float64(rv.Uint())
		default:
			return def
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}
