package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/resume-builder/internal/domain/catalog"
	"github.com/khoahotran/resume-builder/internal/domain/profile"
	"github.com/khoahotran/resume-builder/internal/render"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

type State string

const (
	StateLoading State = "loading"
	StateEditing State = "editing"
	StateSaving  State = "saving"
)

type SaveStatus string

const (
	SaveIdle   SaveStatus = "idle"
	SaveSaving SaveStatus = "saving"
	SaveSaved  SaveStatus = "saved"
	SaveError  SaveStatus = "error"
)

// DefaultSaveDelay is the quiet period after the last edit before a save fires.
const DefaultSaveDelay = 2 * time.Second

type Loader interface {
	Load(ctx context.Context, userID string) (*profile.Profile, bool, error)
}

type Saver interface {
	Save(ctx context.Context, userID string, patch profile.Patch) (profile.Action, error)
}

type Assistant interface {
	Generate(ctx context.Context, kind string, input map[string]any) (string, error)
}

type Deps struct {
	Loader    Loader
	Saver     Saver
	Assistant Assistant
	Clock     Clock
	Logger    logger.Logger
}

// Options configures a session. The callbacks run on the session loop and must not block
// or call back into the session synchronously.
type Options struct {
	SaveDelay    time.Duration
	OnSnapshot   func(Snapshot)
	OnCompletion func(Completion)
}

type Snapshot struct {
	State      State            `json:"state"`
	SaveStatus SaveStatus       `json:"saveStatus"`
	LastAction profile.Action   `json:"lastAction,omitempty"`
	SaveError  string           `json:"saveError,omitempty"`
	LoadError  string           `json:"loadError,omitempty"`
	Profile    *profile.Profile `json:"profile"`
	SkillsText string           `json:"skillsText"`
	Document   render.Document  `json:"document"`
}

type Completion struct {
	Kind    string `json:"kind"`
	Target  Target `json:"target"`
	Text    string `json:"text,omitempty"`
	Applied bool   `json:"applied"`
	// Stale is set when the target changed while the request was in flight.
	Stale bool   `json:"stale,omitempty"`
	Error string `json:"error,omitempty"`
}

// Session is one user editing one profile. All state below is owned by the loop goroutine.
type Session struct {
	userID string
	deps   Deps
	opts   Options
	ctx    context.Context

	events    chan func()
	done      chan struct{}
	closeOnce sync.Once

	state      State
	draft      Draft
	status     SaveStatus
	lastAction profile.Action
	saveErr    string
	loadErr    string
	queued     []Edit

	timer    Timer
	timerSeq uint64
	pending  *profile.Profile
	inflight int
	closed   bool
}

// Start creates a session and begins loading the user's profile.
func Start(ctx context.Context, userID string, deps Deps, opts Options) *Session {
	if deps.Clock == nil {
		deps.Clock = RealClock
	}
	if deps.Logger == nil {
		deps.Logger = logger.NewNop()
	}
	if opts.SaveDelay <= 0 {
		opts.SaveDelay = DefaultSaveDelay
	}

	s := &Session{
		userID: userID,
		deps:   deps,
		opts:   opts,
		// Network work started by the session outlives the caller's request.
		ctx:    context.WithoutCancel(ctx),
		events: make(chan func(), 64),
		done:   make(chan struct{}),
		state:  StateLoading,
		status: SaveIdle,
		draft:  Draft{Profile: newDraftProfile(userID)},
	}
	go s.run()
	go s.load()
	return s
}

func newDraftProfile(userID string) *profile.Profile {
	p := profile.New(userID)
	p.BasicInfo.TemplateID = string(catalog.DefaultID)
	return p
}

func (s *Session) run() {
	for {
		select {
		case fn := <-s.events:
			fn()
		case <-s.done:
			return
		}
	}
}

// post queues fn on the loop. It reports false once the session is closed.
func (s *Session) post(fn func()) bool {
	select {
	case s.events <- fn:
		return true
	case <-s.done:
		return false
	}
}

func (s *Session) load() {
	p, found, err := s.deps.Loader.Load(s.ctx, s.userID)
	s.post(func() {
		if s.closed {
			return
		}
		switch {
		case err != nil:
			s.deps.Logger.Warn("Builder failed to load profile, starting empty", zap.String("user_id", s.userID), zap.Error(err))
			s.loadErr = err.Error()
		case found && p != nil:
			s.draft = Draft{Profile: p.Clone(), SkillsText: profile.JoinSkills(p.Skills)}
			s.draft.Profile.UserID = s.userID
			if s.draft.Profile.BasicInfo.TemplateID == "" {
				s.draft.Profile.BasicInfo.TemplateID = string(catalog.DefaultID)
			}
		}
		s.state = StateEditing

		queued := s.queued
		s.queued = nil
		for _, edit := range queued {
			edit(&s.draft)
		}
		if len(queued) > 0 {
			s.schedule()
		}
		s.publish()
	})
}

// Apply queues an edit. Edits made while loading are replayed onto the loaded profile.
func (s *Session) Apply(edit Edit) {
	s.post(func() {
		if s.closed {
			return
		}
		if s.state == StateLoading {
			s.queued = append(s.queued, edit)
			return
		}
		edit(&s.draft)
		s.schedule()
		s.publish()
	})
}

// schedule replaces the pending save with the current draft and restarts the debounce timer.
func (s *Session) schedule() {
	s.pending = s.draft.Profile.Clone()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timerSeq++
	seq := s.timerSeq
	s.timer = s.deps.Clock.AfterFunc(s.opts.SaveDelay, func() {
		s.post(func() { s.fire(seq) })
	})
}

func (s *Session) fire(seq uint64) {
	// A timer that was superseded or stopped after it had already fired is ignored.
	if s.closed || seq != s.timerSeq || s.pending == nil {
		return
	}
	patch := s.pending.AsPatch()
	for _, section := range s.pending.CorruptedSections {
		patch.Omit(section)
	}
	s.pending = nil
	s.timer = nil

	s.inflight++
	s.state = StateSaving
	s.status = SaveSaving
	s.publish()

	go func() {
		action, err := s.deps.Saver.Save(s.ctx, s.userID, patch)
		s.post(func() { s.saved(action, err) })
	}()
}

func (s *Session) saved(action profile.Action, err error) {
	s.inflight--
	if s.inflight == 0 {
		s.state = StateEditing
	}
	// Last response to arrive wins.
	if err != nil {
		s.deps.Logger.Warn("Builder autosave failed", zap.String("user_id", s.userID), zap.Error(err))
		s.status = SaveError
		s.saveErr = err.Error()
	} else {
		s.status = SaveSaved
		s.saveErr = ""
		s.lastAction = action
	}
	if !s.closed {
		s.publish()
	}
}

// RequestCompletion drafts text for target. The result is applied only if the target
// still holds the value it had when the request was made.
func (s *Session) RequestCompletion(kind string, input map[string]any, target Target) {
	s.post(func() {
		if s.closed {
			return
		}
		fail := func(msg string) {
			s.notify(Completion{Kind: kind, Target: target, Error: msg})
		}
		if s.deps.Assistant == nil {
			fail("completion assist is not available")
			return
		}
		if s.state == StateLoading {
			fail("profile is still loading")
			return
		}
		field, err := target.field(&s.draft)
		if err != nil {
			fail(err.Error())
			return
		}
		original := *field

		go func() {
			text, err := s.deps.Assistant.Generate(s.ctx, kind, input)
			s.post(func() { s.completed(kind, target, original, text, err) })
		}()
	})
}

func (s *Session) completed(kind string, target Target, original, text string, err error) {
	if s.closed {
		return
	}
	res := Completion{Kind: kind, Target: target, Text: text}
	if err != nil {
		res.Error = err.Error()
		s.notify(res)
		return
	}

	field, ferr := target.field(&s.draft)
	if ferr != nil || *field != original {
		res.Stale = true
		s.deps.Logger.Info("Discarding stale completion", zap.String("user_id", s.userID), zap.String("target", string(target)))
		s.notify(res)
		return
	}

	*field = text
	res.Applied = true
	s.notify(res)
	s.schedule()
	s.publish()
}

// Snapshot returns the current state. It reports false after Close.
func (s *Session) Snapshot() (Snapshot, bool) {
	reply := make(chan Snapshot, 1)
	if !s.post(func() { reply <- s.snapshot() }) {
		return Snapshot{}, false
	}
	select {
	case snap := <-reply:
		return snap, true
	case <-s.done:
		return Snapshot{}, false
	}
}

// Close cancels the pending save. No save fires after Close returns.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		stopped := make(chan struct{})
		if s.post(func() {
			s.closed = true
			if s.timer != nil {
				s.timer.Stop()
				s.timer = nil
			}
			s.pending = nil
			close(stopped)
		}) {
			<-stopped
		}
		close(s.done)
	})
}

func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) snapshot() Snapshot {
	p := s.draft.Profile.Clone()
	return Snapshot{
		State:      s.state,
		SaveStatus: s.status,
		LastAction: s.lastAction,
		SaveError:  s.saveErr,
		LoadError:  s.loadErr,
		Profile:    p,
		SkillsText: s.draft.SkillsText,
		Document:   render.Render(p, p.BasicInfo.TemplateID),
	}
}

func (s *Session) publish() {
	if s.opts.OnSnapshot != nil {
		s.opts.OnSnapshot(s.snapshot())
	}
}

func (s *Session) notify(c Completion) {
	if s.opts.OnCompletion != nil {
		s.opts.OnCompletion(c)
	}
}
