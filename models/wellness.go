package models

import "time"

const (
	MoodBad       = "bad"
	MoodOK        = "ok"
	MoodGood      = "good"
	MoodGreat     = "great"
	MoodExcellent = "excellent"
	MoodNeutral   = "neutral"
)

var Moods = []string{MoodBad, MoodOK, MoodGood, MoodGreat, MoodExcellent, MoodNeutral}

var ActivityLevels = []string{"sedentary", "light", "moderate", "vigorous"}

// WellnessRecord holds the daily wellness entry; one per user and date.
type WellnessRecord struct {
	ID               string    `json:"id,omitempty"`
	UserID           string    `json:"userId"`
	Date             string    `json:"date"`
	MoodEmoji        string    `json:"moodEmoji"`
	EnergyLevel      int       `json:"energyLevel"` // 1-5
	SleepHours       *float64  `json:"sleepHours,omitempty"`
	ExerciseMinutes  *int      `json:"exerciseMinutes,omitempty"`
	ActivityLevel    string    `json:"activityLevel,omitempty"`
	Notes            string    `json:"notes"`
	Weight           *float64  `json:"weight,omitempty"`
	FastingGlucose   *float64  `json:"fastingGlucose,omitempty"`
	AfterFoodGlucose *float64  `json:"afterFoodGlucose,omitempty"`
	BPSystolic       *int      `json:"bpSystolic,omitempty"`
	BPDiastolic      *int      `json:"bpDiastolic,omitempty"`
	Supplements      []string  `json:"supplements"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Symptom is an append-only symptom entry.
type Symptom struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Date        string    `json:"date"`
	SymptomType string    `json:"symptomType"`
	Severity    int       `json:"severity"` // 1-5
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

var SymptomTypes = []string{
	"Headache", "Nausea", "Dizziness", "Stomach Cramps", "Bloating",
	"Fatigue", "Joint Pain", "Skin Rash", "Itching", "Flushing",
	"Giddiness", "Hives", "Irritability", "Jitters", "Rapid Heartbeat",
	"Reflux", "Restlessness", "Skin Swelling", "Sleeplessness", "Stuffy Nose",
}

var CommonSupplements = []string{
	"Multivitamin", "Vitamin D", "Vitamin C", "Vitamin B12", "Omega-3",
	"Magnesium", "Zinc", "Iron", "Calcium", "Probiotics",
	"Fiber", "Creatine", "Collagen", "Ashwagandha", "Melatonin",
	"Turmeric", "Electrolytes", "Biotin", "Folic Acid", "Protein Powder",
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func IsMood(v string) bool          { return contains(Moods, v) }
func IsActivityLevel(v string) bool { return contains(ActivityLevels, v) }
func IsSymptomType(v string) bool   { return contains(SymptomTypes, v) }
