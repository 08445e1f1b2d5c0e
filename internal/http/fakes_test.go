package httpx

// In-memory doubles backing the handler and router tests.

import (
	"context"
	"sort"
	"time"

	"github.com/medtrack/medtrack-api/internal/core"
	"github.com/medtrack/medtrack-api/internal/data"
	domainauth "github.com/medtrack/medtrack-api/internal/domain/auth"
	"github.com/medtrack/medtrack-api/internal/domain/model"
	"github.com/medtrack/medtrack-api/internal/service"
)

// stubAuthService satisfies AuthServiceInterface with per-test func fields.
type stubAuthService struct {
	BeginLoginFunc     func(ctx context.Context, input service.BeginLoginInput) (string, error)
	HandleCallbackFunc func(ctx context.Context, input service.CallbackInput) service.CallbackResult
	ValidateFunc       func(token string) (*domainauth.Claims, bool)
}

var _ AuthServiceInterface = (*stubAuthService)(nil)

func (s *stubAuthService) BeginLogin(ctx context.Context, input service.BeginLoginInput) (string, error) {
	if s.BeginLoginFunc != nil {
		return s.BeginLoginFunc(ctx, input)
	}
	return "https://idp.example.com/authorize?state=abc", nil
}

func (s *stubAuthService) HandleCallback(ctx context.Context, input service.CallbackInput) service.CallbackResult {
	if s.HandleCallbackFunc != nil {
		return s.HandleCallbackFunc(ctx, input)
	}
	return service.CallbackResult{Outcome: domainauth.Failed(domainauth.ReasonOAuthFailed)}
}

func (s *stubAuthService) Validate(token string) (*domainauth.Claims, bool) {
	if s.ValidateFunc != nil {
		return s.ValidateFunc(token)
	}
	return nil, false
}

// stubUserService satisfies UserServiceInterface.
type stubUserService struct {
	GetByIDFunc               func(ctx context.Context, id int) (*model.User, error)
	SetPreferredValueTypeFunc func(ctx context.Context, userID int, valueTypeID *int) (*model.User, error)
}

var _ UserServiceInterface = (*stubUserService)(nil)

func (s *stubUserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	if s.GetByIDFunc != nil {
		return s.GetByIDFunc(ctx, id)
	}
	return &model.User{ID: id, Email: "me@example.com", Name: "Me"}, nil
}

func (s *stubUserService) SetPreferredValueType(ctx context.Context, userID int, valueTypeID *int) (*model.User, error) {
	if s.SetPreferredValueTypeFunc != nil {
		return s.SetPreferredValueTypeFunc(ctx, userID, valueTypeID)
	}
	return &model.User{ID: userID, PreferredValueTypeID: valueTypeID}, nil
}

// memUserRepo backs the identity service in router tests.
type memUserRepo struct {
	users map[string]*model.User
}

var _ core.UserRepository = (*memUserRepo)(nil)

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*model.User)}
}

func (r *memUserRepo) Create(_ context.Context, p data.CreateUserParams) (*model.User, error) {
	if _, exists := r.users[p.Email]; exists {
		return nil, data.ErrUserEmailExists
	}
	u := &model.User{ID: len(r.users) + 1, Email: p.Email, Name: p.Name, GoogleID: p.GoogleID}
	r.users[p.Email] = u
	return u, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, data.ErrUserNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, data.ErrUserNotFound
}

func (r *memUserRepo) UpdateProfile(_ context.Context, p data.UpdateProfileParams) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == p.ID {
			u.Name = p.Name
			u.GoogleID = p.GoogleID
			return u, nil
		}
	}
	return nil, data.ErrUserNotFound
}

func (r *memUserRepo) UpdatePreferredValueType(_ context.Context, userID int, valueTypeID *int) (*model.User, error) {
	for _, u := range r.users {
		if u.ID == userID {
			u.PreferredValueTypeID = valueTypeID
			return u, nil
		}
	}
	return nil, data.ErrUserNotFound
}

// memRecordRepo is a map-backed core.RecordRepository.
type memRecordRepo struct {
	records map[int]*model.Record
	nextID  int
}

var _ core.RecordRepository = (*memRecordRepo)(nil)

func newMemRecordRepo() *memRecordRepo {
	return &memRecordRepo{records: make(map[int]*model.Record), nextID: 1}
}

func (r *memRecordRepo) Create(_ context.Context, userID int, req *model.CreateRecordRequest) (*model.Record, error) {
	rec := &model.Record{
		ID:              r.nextID,
		UserID:          userID,
		ValueTypeID:     model.ValueTypeBloodSugar,
		Value:           req.Value,
		Value2:          req.Value2,
		MeasurementTime: req.MeasurementTime,
		Notes:           req.Notes,
		CreatedAt:       time.Now().UTC(),
	}
	if req.ValueTypeID != nil {
		rec.ValueTypeID = *req.ValueTypeID
	}
	r.nextID++
	r.records[rec.ID] = rec
	return rec, nil
}

func (r *memRecordRepo) GetByID(_ context.Context, userID, id int) (*model.Record, error) {
	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return nil, data.ErrRecordNotFound
	}
	return rec, nil
}

func (r *memRecordRepo) List(_ context.Context, userID int, opts model.RecordsListOptions) ([]*model.Record, error) {
	var out []*model.Record
	for _, rec := range r.records {
		if rec.UserID != userID {
			continue
		}
		if opts.ValueTypeID != nil && rec.ValueTypeID != *opts.ValueTypeID {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].MeasurementTime.Equal(out[j].MeasurementTime) {
			return out[i].MeasurementTime.After(out[j].MeasurementTime)
		}
		return out[i].ID > out[j].ID
	})
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return nil, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (r *memRecordRepo) Update(ctx context.Context, userID, id int, req model.UpdateRecordRequest) (*model.Record, error) {
	rec, err := r.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if req.Value != nil {
		rec.Value = *req.Value
	}
	if req.Value2 != nil {
		rec.Value2 = req.Value2
	}
	if req.MeasurementTime != nil {
		rec.MeasurementTime = *req.MeasurementTime
	}
	if req.Notes != nil {
		rec.Notes = req.Notes
	}
	if req.ValueTypeID != nil {
		rec.ValueTypeID = *req.ValueTypeID
	}
	return rec, nil
}

func (r *memRecordRepo) Delete(_ context.Context, userID, id int) (bool, error) {
	rec, ok := r.records[id]
	if !ok || rec.UserID != userID {
		return false, nil
	}
	delete(r.records, id)
	return true, nil
}

func (r *memRecordRepo) Stats(ctx context.Context, userID, valueTypeID int) (*model.RecordStats, error) {
	recs, err := r.List(ctx, userID, model.RecordsListOptions{ValueTypeID: &valueTypeID})
	if err != nil {
		return nil, err
	}
	stats := &model.RecordStats{Count: len(recs)}
	if len(recs) == 0 {
		return stats, nil
	}
	latest := recs[0].Value
	highest, lowest, sum := recs[0].Value, recs[0].Value, 0.0
	for _, rec := range recs {
		if rec.Value > highest {
			highest = rec.Value
		}
		if rec.Value < lowest {
			lowest = rec.Value
		}
		sum += rec.Value
	}
	avg := sum / float64(len(recs))
	stats.Latest = &latest
	stats.Highest = &highest
	stats.Lowest = &lowest
	stats.Average = &avg
	return stats, nil
}

// memValueTypeRepo serves the seeded catalog.
type memValueTypeRepo struct{}

var _ core.ValueTypeRepository = (*memValueTypeRepo)(nil)

func seededCatalog() []*model.ValueType {
	mmHg := "mmHg"
	return []*model.ValueType{
		{ID: 1, Name: "Blood Sugar", Unit: "mmol/L", NameZh: "血糖", IsActive: true},
		{ID: 2, Name: "Blood Pressure", Unit: "mmHg", NameZh: "血压", Unit2: &mmHg, RequiresTwoValues: true, IsActive: true},
		{ID: 3, Name: "Body Fat", Unit: "%", NameZh: "体脂率", IsActive: true},
		{ID: 4, Name: "Weight", Unit: "kg", NameZh: "体重", IsActive: true},
	}
}

func (memValueTypeRepo) ListActive(_ context.Context) ([]*model.ValueType, error) {
	return seededCatalog(), nil
}

func (memValueTypeRepo) GetActive(_ context.Context, id int) (*model.ValueType, error) {
	for _, vt := range seededCatalog() {
		if vt.ID == id {
			return vt, nil
		}
	}
	return nil, data.ErrValueTypeNotFound
}
