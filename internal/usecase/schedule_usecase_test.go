package usecase

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attendance-service/internal/domain/entity"
	"attendance-service/pkg/apperrors"
	"attendance-service/pkg/logger"
	"attendance-service/pkg/metrics"
)

// Shared across the package: promauto registers into the default
// registry, so the metric set is created once per test binary.
var testMetrics = metrics.NewMetrics("attendance_test")

var testLogger = logger.NewLogger("error")

type fakeScheduleRepo struct {
	schedules map[uint]*entity.Schedule
	nextID    uint
	deleted   []uint
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[uint]*entity.Schedule), nextID: 1}
}

func (r *fakeScheduleRepo) FindByID(_ context.Context, id uint) (*entity.Schedule, error) {
	return r.schedules[id], nil
}

func (r *fakeScheduleRepo) FindByIDAndGuildID(_ context.Context, id uint, guildID string) (*entity.Schedule, error) {
	s := r.schedules[id]
	if s == nil || s.GuildID != guildID {
		return nil, nil
	}
	return s, nil
}

func (r *fakeScheduleRepo) FindActiveByGuildID(_ context.Context, guildID string) ([]*entity.Schedule, error) {
	var out []*entity.Schedule
	for _, s := range r.schedules {
		if s.GuildID == guildID && s.Active {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (r *fakeScheduleRepo) FindByEndTimeBefore(_ context.Context, threshold time.Time) ([]*entity.Schedule, error) {
	var out []*entity.Schedule
	for _, s := range r.schedules {
		if s.EndTime != nil && s.EndTime.Before(threshold) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeScheduleRepo) Save(_ context.Context, s *entity.Schedule) (*entity.Schedule, error) {
	if s.ID() == 0 {
		if err := s.SetID(r.nextID); err != nil {
			return nil, err
		}
		r.nextID++
	}
	r.schedules[s.ID()] = s
	return s, nil
}

func (r *fakeScheduleRepo) Delete(_ context.Context, id uint) error {
	delete(r.schedules, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeScheduleRepo) CountActiveByGuildID(_ context.Context, guildID string) (int64, error) {
	var count int64
	for _, s := range r.schedules {
		if s.GuildID == guildID && s.Active {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
	saves int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, discordID string) (*entity.User, error) {
	return r.users[discordID], nil
}

func (r *fakeUserRepo) Save(_ context.Context, u *entity.User) (*entity.User, error) {
	r.saves++
	r.users[u.DiscordID] = u
	return u, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, discordID string) error {
	delete(r.users, discordID)
	return nil
}

func (r *fakeUserRepo) FindByUsernamePattern(_ context.Context, pattern string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Username), strings.ToLower(pattern)) {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeLogRepo struct {
	entries []*entity.ScheduleLog
}

func (r *fakeLogRepo) Append(_ context.Context, log *entity.ScheduleLog) error {
	r.entries = append(r.entries, log)
	return nil
}

func (r *fakeLogRepo) FindByScheduleID(_ context.Context, scheduleID uint) ([]*entity.ScheduleLog, error) {
	var out []*entity.ScheduleLog
	for _, e := range r.entries {
		if e.ScheduleID == scheduleID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeLogRepo) actions() []string {
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakeNotifier struct {
	sent []string
}

func (n *fakeNotifier) Send(_ context.Context, content string) error {
	n.sent = append(n.sent, content)
	return nil
}

func newScheduleFixture() (*ScheduleUseCase, *fakeScheduleRepo, *fakeUserRepo, *fakeLogRepo, *fakeNotifier) {
	scheduleRepo := newFakeScheduleRepo()
	userRepo := newFakeUserRepo()
	logRepo := &fakeLogRepo{}
	notifier := &fakeNotifier{}
	userUC := NewUserUseCase(userRepo, testLogger)
	uc := NewScheduleUseCase(scheduleRepo, logRepo, notifier, userUC, testMetrics, testLogger)
	return uc, scheduleRepo, userRepo, logRepo, notifier
}

func createParams() CreateScheduleParams {
	return CreateScheduleParams{
		GuildID:         "G1",
		Title:           "Night Patrol",
		Aircraft:        entity.AircraftUH60L,
		Mission:         entity.MissionTransport,
		CreatorID:       "U1",
		CreatorUsername: "Alpha",
	}
}

func TestCreateSchedule(t *testing.T) {
	uc, repo, _, logRepo, notifier := newScheduleFixture()

	s, err := uc.CreateSchedule(context.Background(), createParams())
	require.NoError(t, err)
	assert.Equal(t, uint(1), s.ID())
	assert.True(t, s.Active)
	assert.Empty(t, s.CrewMembers())
	assert.Contains(t, repo.schedules, uint(1))
	assert.Equal(t, []string{entity.LogActionCreated}, logRepo.actions())
	require.Len(t, notifier.sent, 1)
	assert.Contains(t, notifier.sent[0], "Night Patrol")
}

func TestCreateSchedule_OutrosRequiresDescription(t *testing.T) {
	uc, _, _, _, _ := newScheduleFixture()

	p := createParams()
	p.Mission = entity.MissionOutros
	_, err := uc.CreateSchedule(context.Background(), p)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	p.Description = "formation training over the coast"
	s, err := uc.CreateSchedule(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "formation training over the coast", s.OutrosDescription())
}

func TestAddCrewMember(t *testing.T) {
	uc, _, userRepo, logRepo, notifier := newScheduleFixture()
	ctx := context.Background()

	s, err := uc.CreateSchedule(ctx, createParams())
	require.NoError(t, err)

	updated, err := uc.AddCrewMember(ctx, AddCrewMemberParams{
		GuildID:    "G1",
		ScheduleID: s.ID(),
		DiscordID:  "U2",
		Username:   "bravo",
		Nickname:   "Bravo",
	})
	require.NoError(t, err)
	assert.Len(t, updated.CrewMembers(), 1)
	assert.NotNil(t, userRepo.users["U2"], "acting user should be created lazily")
	assert.Contains(t, logRepo.actions(), entity.LogActionCrewAdded)
	assert.Contains(t, notifier.sent[len(notifier.sent)-1], "Bravo")
}

func TestAddCrewMember_CreatorRejected(t *testing.T) {
	uc, _, _, _, _ := newScheduleFixture()
	ctx := context.Background()

	s, err := uc.CreateSchedule(ctx, createParams())
	require.NoError(t, err)

	_, err = uc.AddCrewMember(ctx, AddCrewMemberParams{
		GuildID: "G1", ScheduleID: s.ID(), DiscordID: "U1", Username: "alpha", Nickname: "Alpha",
	})
	assert.ErrorIs(t, err, apperrors.ErrCreatorCannotBeCrew)
}

func TestAddCrewMember_Duplicate(t *testing.T) {
	uc, _, _, _, _ := newScheduleFixture()
	ctx := context.Background()

	s, err := uc.CreateSchedule(ctx, createParams())
	require.NoError(t, err)

	p := AddCrewMemberParams{GuildID: "G1", ScheduleID: s.ID(), DiscordID: "U2", Username: "bravo", Nickname: "Bravo"}
	_, err = uc.AddCrewMember(ctx, p)
	require.NoError(t, err)

	_, err = uc.AddCrewMember(ctx, p)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyInCrew)

	found, err := uc.FindSchedule(ctx, s.ID(), "G1")
	require.NoError(t, err)
	assert.Len(t, found.CrewMembers(), 1)
}

func TestAddCrewMember_UnknownSchedule(t *testing.T) {
	uc, _, _, _, _ := newScheduleFixture()

	_, err := uc.AddCrewMember(context.Background(), AddCrewMemberParams{
		GuildID: "G1", ScheduleID: 99, DiscordID: "U2", Username: "bravo", Nickname: "Bravo",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestAddCrewMember_WrongGuild(t *testing.T) {
	uc, _, _, _, _ := newScheduleFixture()
	ctx := context.Background()

	s, err := uc.CreateSchedule(ctx, createParams())
	require.NoError(t, err)

	_, err = uc.AddCrewMember(ctx, AddCrewMemberParams{
		GuildID: "G2", ScheduleID: s.ID(), DiscordID: "U2", Username: "bravo", Nickname: "Bravo",
	})
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestRemoveCrewMember(t *testing.T) {
	uc, _, _, logRepo, _ := newScheduleFixture()
	ctx := context.Background()

	s, err := uc.CreateSchedule(ctx, createParams())
	require.NoError(t, err)
	_, err = uc.AddCrewMember(ctx, AddCrewMemberParams{
		GuildID: "G1", ScheduleID: s.ID(), DiscordID: "U2", Username: "bravo", Nickname: "Bravo",
	})
	require.NoError(t, err)

	_, err = uc.RemoveCrewMember(ctx, "G1", s.ID(), "U1")
	assert.ErrorIs(t, err, apperrors.ErrCreatorCannotLeave)

	_, err = uc.RemoveCrewMember(ctx, "G1", s.ID(), "U9")
	assert.ErrorIs(t, err, apperrors.ErrNotInCrew)

	updated, err := uc.RemoveCrewMember(ctx, "G1", s.ID(), "U2")
	require.NoError(t, err)
	assert.Empty(t, updated.CrewMembers())
	assert.Contains(t, logRepo.actions(), entity.LogActionCrewRemoved)
}

func TestCloseSchedule(t *testing.T) {
	uc, _, _, logRepo, notifier := newScheduleFixture()
	ctx := context.Background()

	s, err := uc.CreateSchedule(ctx, createParams())
	require.NoError(t, err)

	// Any user may close, not only the creator.
	closed, err := uc.CloseSchedule(ctx, "G1", s.ID(), "U5")
	require.NoError(t, err)
	assert.False(t, closed.Active)
	require.NotNil(t, closed.EndTime)
	assert.Contains(t, logRepo.actions(), entity.LogActionClosed)
	assert.Contains(t, notifier.sent[len(notifier.sent)-1], "closed")

	_, err = uc.CloseSchedule(ctx, "G1", s.ID(), "U5")
	assert.ErrorIs(t, err, apperrors.ErrScheduleClosed)

	_, err = uc.RemoveCrewMember(ctx, "G1", s.ID(), "U2")
	assert.ErrorIs(t, err, apperrors.ErrScheduleClosed)
}

func TestGetActiveSchedules(t *testing.T) {
	uc, _, _, _, _ := newScheduleFixture()
	ctx := context.Background()

	_, err := uc.GetActiveSchedules(ctx, "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	first, err := uc.CreateSchedule(ctx, createParams())
	require.NoError(t, err)
	p := createParams()
	p.Title = "Dawn Patrol"
	_, err = uc.CreateSchedule(ctx, p)
	require.NoError(t, err)
	other := createParams()
	other.GuildID = "G2"
	_, err = uc.CreateSchedule(ctx, other)
	require.NoError(t, err)

	_, err = uc.CloseSchedule(ctx, "G1", first.ID(), "U1")
	require.NoError(t, err)

	active, err := uc.GetActiveSchedules(ctx, "G1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Dawn Patrol", active[0].Title)
}

func TestGenerateNextGraTitle(t *testing.T) {
	uc, _, _, _, _ := newScheduleFixture()
	ctx := context.Background()

	title, err := uc.GenerateNextGraTitle(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "G.R.A - 1", title)

	title, err = uc.GenerateNextGraTitle(ctx, "G1")
	require.NoError(t, err)
	assert.Equal(t, "G.R.A - 1", title)

	for i := 0; i < 3; i++ {
		_, err := uc.CreateSchedule(ctx, createParams())
		require.NoError(t, err)
	}

	title, err = uc.GenerateNextGraTitle(ctx, "G1")
	require.NoError(t, err)
	assert.Equal(t, "G.R.A - 4", title)
}

func TestFindSchedule(t *testing.T) {
	uc, _, _, _, _ := newScheduleFixture()
	ctx := context.Background()

	_, err := uc.FindSchedule(ctx, 0, "G1")
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	_, err = uc.FindSchedule(ctx, 42, "G1")
	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))

	s, err := uc.CreateSchedule(ctx, createParams())
	require.NoError(t, err)
	found, err := uc.FindSchedule(ctx, s.ID(), "G1")
	require.NoError(t, err)
	assert.Equal(t, s.ID(), found.ID())
}

func TestCleanupOldSchedules(t *testing.T) {
	uc, repo, _, logRepo, _ := newScheduleFixture()
	ctx := context.Background()

	closedAgo := func(title string, age time.Duration) *entity.Schedule {
		p := createParams()
		p.Title = title
		s, err := uc.CreateSchedule(ctx, p)
		require.NoError(t, err)
		require.NoError(t, s.Close("U1"))
		end := time.Now().Add(-age)
		s.EndTime = &end
		return s
	}

	stale1 := closedAgo("Old One", 40*24*time.Hour)
	stale2 := closedAgo("Old Two", 31*24*time.Hour)
	closedAgo("Fresh", 10*24*time.Hour)
	_, err := uc.CreateSchedule(ctx, createParams()) // still active
	require.NoError(t, err)

	cleaned, err := uc.CleanupOldSchedules(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 2, cleaned)
	assert.ElementsMatch(t, []uint{stale1.ID(), stale2.ID()}, repo.deleted)
	assert.Len(t, repo.schedules, 2)

	cleanupLogs := 0
	for _, a := range logRepo.actions() {
		if a == entity.LogActionCleanedUp {
			cleanupLogs++
		}
	}
	assert.Equal(t, 2, cleanupLogs)
}

func TestCleanupOldSchedules_DefaultThreshold(t *testing.T) {
	uc, repo, _, _, _ := newScheduleFixture()
	ctx := context.Background()

	s, err := uc.CreateSchedule(ctx, createParams())
	require.NoError(t, err)
	require.NoError(t, s.Close("U1"))
	end := time.Now().Add(-45 * 24 * time.Hour)
	s.EndTime = &end

	cleaned, err := uc.CleanupOldSchedules(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, cleaned)
	assert.Empty(t, repo.schedules)
}
