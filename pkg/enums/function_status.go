package enums

import "fmt"

// FunctionStatus is the lifecycle state of a wedding function (ceremony,
// sangeet, reception and so on).
type FunctionStatus string

const (
	FunctionPending   FunctionStatus = "pending"
	FunctionCompleted FunctionStatus = "completed"
	FunctionOverdue   FunctionStatus = "overdue"
	FunctionCancelled FunctionStatus = "cancelled"
)

var validFunctionStatuses = []FunctionStatus{FunctionPending, FunctionCompleted, FunctionOverdue, FunctionCancelled}

func (s FunctionStatus) String() string {
	return string(s)
}

func (s FunctionStatus) IsValid() bool {
	for _, candidate := range validFunctionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

func ParseFunctionStatus(value string) (FunctionStatus, error) {
	for _, candidate := range validFunctionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid function status %q", value)
}
