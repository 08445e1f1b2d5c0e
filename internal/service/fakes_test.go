package service

// Hand-written repository fakes shared by the service tests. Func fields
// override behavior per test; unset fields report not-found.

import (
	"context"

	"github.com/medtrack/medtrack-api/internal/core"
	"github.com/medtrack/medtrack-api/internal/data"
	"github.com/medtrack/medtrack-api/internal/domain/model"
)

type fakeUserRepo struct {
	CreateFunc                   func(ctx context.Context, p data.CreateUserParams) (*model.User, error)
	GetByIDFunc                  func(ctx context.Context, id int) (*model.User, error)
	GetByEmailFunc               func(ctx context.Context, email string) (*model.User, error)
	UpdateProfileFunc            func(ctx context.Context, p data.UpdateProfileParams) (*model.User, error)
	UpdatePreferredValueTypeFunc func(ctx context.Context, userID int, valueTypeID *int) (*model.User, error)

	createCalls        []data.CreateUserParams
	updateProfileCalls []data.UpdateProfileParams
}

var _ core.UserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) Create(ctx context.Context, p data.CreateUserParams) (*model.User, error) {
	f.createCalls = append(f.createCalls, p)
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, p)
	}
	return &model.User{ID: 1, Email: p.Email, Name: p.Name, GoogleID: p.GoogleID}, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (*model.User, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, id)
	}
	return nil, data.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.GetByEmailFunc != nil {
		return f.GetByEmailFunc(ctx, email)
	}
	return nil, data.ErrUserNotFound
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, p data.UpdateProfileParams) (*model.User, error) {
	f.updateProfileCalls = append(f.updateProfileCalls, p)
	if f.UpdateProfileFunc != nil {
		return f.UpdateProfileFunc(ctx, p)
	}
	return &model.User{ID: p.ID, Name: p.Name, GoogleID: p.GoogleID}, nil
}

func (f *fakeUserRepo) UpdatePreferredValueType(ctx context.Context, userID int, valueTypeID *int) (*model.User, error) {
	if f.UpdatePreferredValueTypeFunc != nil {
		return f.UpdatePreferredValueTypeFunc(ctx, userID, valueTypeID)
	}
	return &model.User{ID: userID, PreferredValueTypeID: valueTypeID}, nil
}

type fakeRecordRepo struct {
	CreateFunc  func(ctx context.Context, userID int, req *model.CreateRecordRequest) (*model.Record, error)
	GetByIDFunc func(ctx context.Context, userID, id int) (*model.Record, error)
	ListFunc    func(ctx context.Context, userID int, opts model.RecordsListOptions) ([]*model.Record, error)
	UpdateFunc  func(ctx context.Context, userID, id int, req model.UpdateRecordRequest) (*model.Record, error)
	DeleteFunc  func(ctx context.Context, userID, id int) (bool, error)
	StatsFunc   func(ctx context.Context, userID, valueTypeID int) (*model.RecordStats, error)
}

var _ core.RecordRepository = (*fakeRecordRepo)(nil)

func (f *fakeRecordRepo) Create(ctx context.Context, userID int, req *model.CreateRecordRequest) (*model.Record, error) {
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, userID, req)
	}
	rec := &model.Record{
		ID:              1,
		UserID:          userID,
		ValueTypeID:     model.ValueTypeBloodSugar,
		Value:           req.Value,
		Value2:          req.Value2,
		MeasurementTime: req.MeasurementTime,
		Notes:           req.Notes,
	}
	if req.ValueTypeID != nil {
		rec.ValueTypeID = *req.ValueTypeID
	}
	return rec, nil
}

func (f *fakeRecordRepo) GetByID(ctx context.Context, userID, id int) (*model.Record, error) {
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, userID, id)
	}
	return nil, data.ErrRecordNotFound
}

func (f *fakeRecordRepo) List(ctx context.Context, userID int, opts model.RecordsListOptions) ([]*model.Record, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, userID, opts)
	}
	return nil, nil
}

func (f *fakeRecordRepo) Update(ctx context.Context, userID, id int, req model.UpdateRecordRequest) (*model.Record, error) {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, userID, id, req)
	}
	return nil, data.ErrRecordNotFound
}

func (f *fakeRecordRepo) Delete(ctx context.Context, userID, id int) (bool, error) {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, userID, id)
	}
	return false, nil
}

func (f *fakeRecordRepo) Stats(ctx context.Context, userID, valueTypeID int) (*model.RecordStats, error) {
	if f.StatsFunc != nil {
		return f.StatsFunc(ctx, userID, valueTypeID)
	}
	return &model.RecordStats{}, nil
}

type fakeValueTypeRepo struct {
	ListActiveFunc func(ctx context.Context) ([]*model.ValueType, error)
	GetActiveFunc  func(ctx context.Context, id int) (*model.ValueType, error)
}

var _ core.ValueTypeRepository = (*fakeValueTypeRepo)(nil)

// seededValueTypes mirrors the catalog rows installed by migration.
func seededValueTypes() map[int]*model.ValueType {
	mmHg := "mmHg"
	return map[int]*model.ValueType{
		model.ValueTypeBloodSugar:    {ID: 1, Name: "Blood Sugar", Unit: "mmol/L", NameZh: "血糖", IsActive: true},
		model.ValueTypeBloodPressure: {ID: 2, Name: "Blood Pressure", Unit: "mmHg", NameZh: "血压", Unit2: &mmHg, RequiresTwoValues: true, IsActive: true},
		model.ValueTypeBodyFat:       {ID: 3, Name: "Body Fat", Unit: "%", NameZh: "体脂率", IsActive: true},
		model.ValueTypeWeight:        {ID: 4, Name: "Weight", Unit: "kg", NameZh: "体重", IsActive: true},
	}
}

func (f *fakeValueTypeRepo) ListActive(ctx context.Context) ([]*model.ValueType, error) {
	if f.ListActiveFunc != nil {
		return f.ListActiveFunc(ctx)
	}
	seeded := seededValueTypes()
	out := make([]*model.ValueType, 0, len(seeded))
	for id := 1; id <= len(seeded); id++ {
		out = append(out, seeded[id])
	}
	return out, nil
}

func (f *fakeValueTypeRepo) GetActive(ctx context.Context, id int) (*model.ValueType, error) {
	if f.GetActiveFunc != nil {
		return f.GetActiveFunc(ctx, id)
	}
	vt, ok := seededValueTypes()[id]
	if !ok {
		return nil, data.ErrValueTypeNotFound
	}
	return vt, nil
}
