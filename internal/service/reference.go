package service

import (
	"context"
	"crypto/rand"
	"math/big"

	"fundledger-backend/internal/domain"
	"fundledger-backend/internal/repository"
)

const (
	referenceCharset  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceLength   = 6
	referenceAttempts = 20
)

type referenceService struct {
	memberRepo repository.MemberRepository
}

func NewReferenceService(memberRepo repository.MemberRepository) ReferenceService {
	return &referenceService{memberRepo: memberRepo}
}

// GenerateReference produces a REF-XXXXXX code and retries while it collides
// with an existing member reference in the department. The attempt loop is
// bounded so the operation is total: exhaustion fails with Conflict instead
// of spinning.
func (s *referenceService) GenerateReference(ctx context.Context, departmentID int32) (string, error) {
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		ref, err := randomReference()
		if err != nil {
			return "", domain.Internal(err)
		}
		exists, err := s.memberRepo.ReferenceExists(ctx, departmentID, ref)
		if err != nil {
			return "", domain.Internal(err)
		}
		if !exists {
			return ref, nil
		}
	}
	return "", domain.E(domain.KindConflict, "could not generate a unique payment reference")
}

func randomReference() (string, error) {
	buf := make([]byte, referenceLength)
	max := big.NewInt(int64(len(referenceCharset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = referenceCharset[n.Int64()]
	}
	return "REF-" + string(buf), nil
}
