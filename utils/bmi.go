package utils

import (
	"errors"
	"math"
)

// BMI is a body-mass index with its WHO category.
type BMI struct {
	Value    float64 `json:"value"`
	Category string  `json:"category"`
}

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (BMI, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return BMI{}, errors.New("height and weight must be positive")
	}
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return BMI{}, errors.New("height/weight out of plausible range")
	}

	h := heightCm / 100.0
	v := math.Round(weightKg/(h*h)*10) / 10
	return BMI{Value: v, Category: BMICategory(v)}, nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	default:
		return "Obese"
	}
}
