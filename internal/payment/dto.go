package payment

// IntentDTO asks the gateway for a payment intent covering a salary.
// Salary is in whole currency units; the gateway wants cents.
type IntentDTO struct {
	Salary float64 `json:"salary"`
}

// RecordDTO stores a completed salary payment.
type RecordDTO struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Month         string `json:"month"`
	Year          int    `json:"year"`
	Amount        int64  `json:"amount"`
	TransactionID string `json:"transaction_id"`
}

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d IntentDTO) Validate() error {
	if d.Salary <= 0 {
		return ValidationError{Msg: "salary must be positive"}
	}
	return nil
}

func (d RecordDTO) Validate() error {
	if d.Email == "" {
		return ValidationError{Msg: "email is required"}
	}
	if d.Amount <= 0 {
		return ValidationError{Msg: "amount must be positive"}
	}
	if d.Month == "" {
		return ValidationError{Msg: "month is required"}
	}
	return nil
}

func (d IntentDTO) AmountCents() int64 {
	return int64(d.Salary * 100)
}
