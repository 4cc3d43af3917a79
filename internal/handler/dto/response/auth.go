package response

import "club-roster/internal/domain/auth"

type OperatorResponse struct {
	Subject string `json:"subject"`
	Role    string `json:"role"`
}

func FromOperator(op auth.Operator) OperatorResponse {
	return OperatorResponse{Subject: op.Subject, Role: op.Role.String()}
}
