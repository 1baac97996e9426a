package utils

func UintToPtr(v uint) *uint {
	return &v
}

func Float64ToPtr(v float64) *float64 {
	return &v
}
