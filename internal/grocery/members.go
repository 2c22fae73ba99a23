package grocery

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/coopstore/coopstore/internal/domain"
)

// EnrollRequest carries the fields of a new member
type EnrollRequest struct {
	Name       string
	Address    string
	Phone      string
	DateJoined time.Time
	FeePaid    decimal.Decimal
}

// UpdateMemberRequest changes contact fields; nil fields are left alone
type UpdateMemberRequest struct {
	ID      string
	Name    *string
	Address *string
	Phone   *string
}

// EnrollMember adds a member and assigns the next M- id
func (s *Store) EnrollMember(req EnrollRequest) Result {
	s.lock()
	defer s.unlock()

	name := strings.TrimSpace(req.Name)
	if name == "" || req.FeePaid.IsNegative() {
		return withCode(domain.ActionFailed)
	}
	joined := req.DateJoined
	if joined.IsZero() {
		joined = s.clock()
	}
	m := &domain.Member{
		Name:       name,
		Address:    strings.TrimSpace(req.Address),
		Phone:      strings.TrimSpace(req.Phone),
		DateJoined: joined,
		FeePaid:    req.FeePaid,
	}
	s.members.Add(m)
	fields := memberFields(m)
	s.logger.Info("member enrolled", zap.String("member_id", m.ID), zap.String("name", m.Name))
	s.emit(TopicMemberEnrolled, *fields)
	return Result{Code: domain.ActionSuccessful, Member: fields}
}

// RemoveMember deletes a member for good. A member with a checkout in
// progress cannot be removed.
func (s *Store) RemoveMember(id string) Result {
	s.lock()
	defer s.unlock()

	m, ok := s.members.Get(id)
	if !ok {
		return withCode(domain.InvalidMemberId)
	}
	fields := memberFields(m)
	if s.memberInCheckout(m.ID) {
		return Result{Code: domain.ActionFailed, Member: fields}
	}
	if !s.members.Remove(m.ID) {
		return Result{Code: domain.ActionFailed, Member: fields}
	}
	s.logger.Info("member removed", zap.String("member_id", m.ID))
	s.emit(TopicMemberRemoved, *fields)
	return Result{Code: domain.ActionSuccessful, Member: fields}
}

// UpdateMember changes a member's name, address or phone
func (s *Store) UpdateMember(req UpdateMemberRequest) Result {
	s.lock()
	defer s.unlock()

	m, ok := s.members.Get(req.ID)
	if !ok {
		return withCode(domain.InvalidMemberId)
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return Result{Code: domain.ActionFailed, Member: memberFields(m)}
		}
		s.members.Rename(m.ID, name)
	}
	if req.Address != nil {
		m.Address = strings.TrimSpace(*req.Address)
	}
	if req.Phone != nil {
		m.Phone = strings.TrimSpace(*req.Phone)
	}
	return Result{Code: domain.ActionSuccessful, Member: memberFields(m)}
}

func (s *Store) MemberExists(id string) bool {
	s.lock()
	defer s.unlock()
	_, ok := s.members.Get(id)
	return ok
}

// GetMember returns the member fields or InvalidMemberId
func (s *Store) GetMember(id string) Result {
	s.lock()
	defer s.unlock()
	m, ok := s.members.Get(id)
	if !ok {
		return withCode(domain.InvalidMemberId)
	}
	return Result{Code: domain.ActionSuccessful, Member: memberFields(m)}
}

// Members lists every member in enrollment order
func (s *Store) Members() []MemberFields {
	s.lock()
	defer s.unlock()
	all := s.members.All()
	out := make([]MemberFields, 0, len(all))
	for _, m := range all {
		out = append(out, *memberFields(m))
	}
	return out
}

// SearchMembers lists members whose name starts with prefix, any case
func (s *Store) SearchMembers(prefix string) []MemberFields {
	s.lock()
	defer s.unlock()
	var out []MemberFields
	for _, m := range s.members.SearchByName(prefix) {
		out = append(out, *memberFields(m))
	}
	return out
}

// MemberTransactions lists a member's transactions made on any day from
// from through to inclusive. The bool is false for an unknown member.
func (s *Store) MemberTransactions(memberID string, from, to time.Time) ([]TransactionFields, bool) {
	s.lock()
	defer s.unlock()
	m, ok := s.members.Get(memberID)
	if !ok {
		return nil, false
	}
	var out []TransactionFields
	for _, t := range m.TransactionsBetween(from, to) {
		out = append(out, transactionFields(t))
	}
	return out, true
}
