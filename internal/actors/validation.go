package actors

import "github.com/casting-agency/casting-agency/internal/shared"

func (s *Service) validate(req any) error {
	return shared.ValidateStruct(req)
}
