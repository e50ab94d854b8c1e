package entry

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/erazemk/milasset/internal/metrics"
	"github.com/erazemk/milasset/internal/model"
	"github.com/erazemk/milasset/internal/session"
	"github.com/erazemk/milasset/internal/store"
)

var (
	// ErrUnauthenticated is returned when no user is logged in.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrForbidden is returned when the user's role may not submit the record.
	ErrForbidden = errors.New("role not permitted")
)

// reference is a field that must name an existing base, equipment item or
// service member.
type reference struct {
	field  string
	id     string
	exists func(ctx context.Context, db *sql.DB, id string) (bool, error)
	msg    string
}

func baseRef(field, id string) reference {
	return reference{field, id, func(ctx context.Context, db *sql.DB, id string) (bool, error) {
		b, err := store.GetBase(ctx, db, id)
		return b != nil, err
	}, "Unknown base"}
}

func equipmentRef(field, id string) reference {
	return reference{field, id, func(ctx context.Context, db *sql.DB, id string) (bool, error) {
		e, err := store.GetEquipment(ctx, db, id)
		return e != nil, err
	}, "Unknown equipment"}
}

func personnelRef(field, id string) reference {
	return reference{field, id, func(ctx context.Context, db *sql.DB, id string) (bool, error) {
		p, err := store.GetPersonnel(ctx, db, id)
		return p != nil, err
	}, "Unknown personnel"}
}

// check runs the session, field and reference checks shared by every kind.
func check(ctx context.Context, db *sql.DB, sess *session.Session, draft any, refs ...reference) error {
	if !sess.IsAuthenticated() {
		return ErrUnauthenticated
	}
	if fields := Validate(draft); fields != nil {
		return fields
	}

	fields := FieldErrors{}
	for _, r := range refs {
		ok, err := r.exists(ctx, db, r.id)
		if err != nil {
			return err
		}
		if !ok {
			fields[r.field] = r.msg
		}
	}
	if len(fields) > 0 {
		return fields
	}
	return nil
}

func created(kind, id string, quantity int, sess *session.Session) {
	metrics.ObserveRecordCreated(kind)
	slog.Info(kind+" created", "id", id, "quantity", quantity, "user", sess.CurrentUser().Email)
}

// SubmitPurchase validates d and records it as a new purchase.
func SubmitPurchase(ctx context.Context, db *sql.DB, sess *session.Session, d PurchaseDraft) (*model.Purchase, error) {
	if err := check(ctx, db, sess, d, baseRef("baseId", d.BaseID)); err != nil {
		return nil, err
	}

	p, err := store.CreatePurchase(ctx, db, model.Purchase{
		EquipmentType: d.EquipmentType,
		Quantity:      d.Quantity,
		BaseID:        d.BaseID,
		Date:          d.Date,
		PurchaseOrder: d.PurchaseOrder,
		Supplier:      d.Supplier,
		Cost:          d.Cost,
		Notes:         d.Notes,
	})
	if err != nil {
		return nil, err
	}
	created(store.KindPurchase, p.ID, p.Quantity, sess)
	return p, nil
}

// SubmitTransfer validates d and records it as a pending transfer authorized
// by the current user.
func SubmitTransfer(ctx context.Context, db *sql.DB, sess *session.Session, d TransferDraft) (*model.Transfer, error) {
	err := check(ctx, db, sess, d,
		baseRef("fromBaseId", d.FromBaseID),
		baseRef("toBaseId", d.ToBaseID),
	)
	if err != nil {
		return nil, err
	}

	t, err := store.CreateTransfer(ctx, db, model.Transfer{
		EquipmentType: d.EquipmentType,
		Quantity:      d.Quantity,
		FromBaseID:    d.FromBaseID,
		ToBaseID:      d.ToBaseID,
		Date:          d.Date,
		AuthorizedBy:  sess.CurrentUser().ID,
		Status:        model.TransferStatusPending,
		Notes:         d.Notes,
	})
	if err != nil {
		return nil, err
	}
	created(store.KindTransfer, t.ID, t.Quantity, sess)
	return t, nil
}

// SubmitAssignment validates d and records it as an active assignment. The
// equipment's own status is not changed.
func SubmitAssignment(ctx context.Context, db *sql.DB, sess *session.Session, d AssignmentDraft) (*model.Assignment, error) {
	err := check(ctx, db, sess, d,
		equipmentRef("equipmentId", d.EquipmentID),
		personnelRef("personnelId", d.PersonnelID),
	)
	if err != nil {
		return nil, err
	}

	a, err := store.CreateAssignment(ctx, db, model.Assignment{
		EquipmentID:  d.EquipmentID,
		PersonnelID:  d.PersonnelID,
		DateAssigned: d.DateAssigned,
		Purpose:      d.Purpose,
		Status:       model.AssignmentStatusActive,
	})
	if err != nil {
		return nil, err
	}
	created(store.KindAssignment, a.ID, 1, sess)
	return a, nil
}

// SubmitExpenditure validates d and records it as an expenditure authorized
// by the current user, who must hold one of the expenditure roles.
func SubmitExpenditure(ctx context.Context, db *sql.DB, sess *session.Session, d ExpenditureDraft) (*model.Expenditure, error) {
	if sess.IsAuthenticated() && !sess.HasPermission(model.ExpenditureRoles) {
		return nil, ErrForbidden
	}
	if err := check(ctx, db, sess, d, baseRef("baseId", d.BaseID)); err != nil {
		return nil, err
	}

	e, err := store.CreateExpenditure(ctx, db, model.Expenditure{
		EquipmentType: d.EquipmentType,
		Quantity:      d.Quantity,
		BaseID:        d.BaseID,
		Date:          d.Date,
		AuthorizedBy:  sess.CurrentUser().ID,
		Purpose:       d.Purpose,
	})
	if err != nil {
		return nil, err
	}
	created(store.KindExpenditure, e.ID, e.Quantity, sess)
	return e, nil
}
