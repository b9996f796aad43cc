package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/chainsafe/vrsc-identity/pkg/identity"
	"github.com/chainsafe/vrsc-identity/pkg/registration"
	"github.com/chainsafe/vrsc-identity/pkg/vrsc"
	"github.com/chainsafe/vrsc-identity/pkg/vrscrpc"
)

// RegistrationDao is a data access object that maps directly to the
// 'registrations' table in PostgreSQL.
type RegistrationDao struct {
	bun.BaseModel    `bun:"table:registrations,alias:r"`
	ID               string    `bun:"id,pk,type:varchar(64)"`
	Name             string    `bun:"name,notnull,type:varchar(255)"`
	State            string    `bun:"state,notnull,type:varchar(32)"`
	Request          *string   `bun:"request,type:jsonb"`
	CommitmentTxID   *string   `bun:"commitment_txid,type:varchar(64)"`
	Commitment       *string   `bun:"commitment,type:jsonb"`
	RegistrationTxID *string   `bun:"registration_txid,type:varchar(64)"`
	Error            *string   `bun:"error,type:text"`
	CreatedAt        time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt        time.Time `bun:"updated_at,notnull"`
}

func toRegistrationDao(p *registration.Progress) (*RegistrationDao, error) {
	dao := &RegistrationDao{
		ID:        p.ID,
		Name:      p.Name,
		State:     p.State.String(),
		UpdatedAt: p.UpdatedAt,
	}
	if dao.UpdatedAt.IsZero() {
		dao.UpdatedAt = time.Now().UTC()
	}

	if p.Request != nil {
		b, err := json.Marshal(p.Request)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		req := string(b)
		dao.Request = &req
	}
	if p.Commitment != nil {
		b, err := json.Marshal(p.Commitment)
		if err != nil {
			return nil, fmt.Errorf("failed to encode commitment: %w", err)
		}
		commitment := string(b)
		txid := p.Commitment.TxID.String()
		dao.Commitment = &commitment
		dao.CommitmentTxID = &txid
	}
	if p.RegistrationTxID != nil {
		txid := p.RegistrationTxID.String()
		dao.RegistrationTxID = &txid
	}
	if p.Error != "" {
		dao.Error = &p.Error
	}

	return dao, nil
}

func toProgress(dao *RegistrationDao) (*registration.Progress, error) {
	state, err := registration.ParseState(dao.State)
	if err != nil {
		return nil, err
	}

	p := &registration.Progress{
		ID:        dao.ID,
		Name:      dao.Name,
		State:     state,
		UpdatedAt: dao.UpdatedAt,
	}

	if dao.Request != nil {
		var req identity.Request
		if err := json.Unmarshal([]byte(*dao.Request), &req); err != nil {
			return nil, fmt.Errorf("failed to decode request of %s: %w", dao.ID, err)
		}
		p.Request = &req
	}
	if dao.Commitment != nil {
		var c vrscrpc.NameCommitment
		if err := json.Unmarshal([]byte(*dao.Commitment), &c); err != nil {
			return nil, fmt.Errorf("failed to decode commitment of %s: %w", dao.ID, err)
		}
		p.Commitment = &c
	}
	if dao.RegistrationTxID != nil {
		txid, err := vrsc.ParseTxID(*dao.RegistrationTxID)
		if err != nil {
			return nil, fmt.Errorf("failed to decode registration txid of %s: %w", dao.ID, err)
		}
		p.RegistrationTxID = &txid
	}
	if dao.Error != nil {
		p.Error = *dao.Error
	}

	return p, nil
}
