package editor

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"testing"

	"github.com/catalogkit/internal/client"
	"github.com/catalogkit/internal/configurator"
	"github.com/catalogkit/internal/constants"
)

type fakeGateway struct {
	mu         sync.Mutex
	references map[string][]client.ReferenceItem
	failKinds  map[string]bool
	snapshot   interface{}
	fetchErr   error

	submitEnv  *client.Envelope
	submitErr  error
	submitGate chan struct{}
	submitted  []url.Values
	submitIDs  []uint
	started    chan struct{}
}

func (g *fakeGateway) ListReferences(_ context.Context, kind string) ([]client.ReferenceItem, error) {
	if g.failKinds[kind] {
		return nil, errors.New("reference backend down")
	}
	return g.references[kind], nil
}

func (g *fakeGateway) Fetch(_ context.Context, _ string, _ uint, dest interface{}) error {
	if g.fetchErr != nil {
		return g.fetchErr
	}
	raw, err := json.Marshal(g.snapshot)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (g *fakeGateway) Submit(_ context.Context, _ string, id uint, values url.Values) (*client.Envelope, error) {
	if g.started != nil {
		close(g.started)
	}
	if g.submitGate != nil {
		<-g.submitGate
	}
	g.mu.Lock()
	g.submitted = append(g.submitted, values)
	g.submitIDs = append(g.submitIDs, id)
	g.mu.Unlock()
	return g.submitEnv, g.submitErr
}

func int64Ptr(v int64) *int64 { return &v }

func newComboSession(t *testing.T, gateway *fakeGateway) *Session {
	t.Helper()
	s, err := NewSession(gateway, KindCombo, 0, constants.LocaleEnUS)
	if err != nil {
		t.Fatalf("new session failed: %v", err)
	}
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	s.Combo().Name = "Breakfast"
	_ = s.Combo().Items.SetTarget(0, 1)
	_ = s.Combo().Items.SetQuantity(0, 2)
	return s
}

func TestNewSessionRejectsUnknownKind(t *testing.T) {
	if _, err := NewSession(&fakeGateway{}, Kind("orders"), 0, ""); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("want ErrUnknownKind got %v", err)
	}
}

func TestLoadReferencesDegradesFailedKinds(t *testing.T) {
	gateway := &fakeGateway{
		references: map[string][]client.ReferenceItem{
			constants.ReferenceProducts: {{ID: 1, Name: "Bread", Stock: int64Ptr(5)}},
			constants.ReferenceBranches: {{ID: 9, Name: "Downtown"}},
		},
		failKinds: map[string]bool{constants.ReferenceTimeSlots: true},
	}
	s, _ := NewSession(gateway, KindCombo, 0, constants.LocaleEnUS)
	refs := s.LoadReferences(context.Background())

	if len(refs.Products) != 1 || refs.Products[0].Stock == nil || *refs.Products[0].Stock != 5 {
		t.Fatalf("unexpected products %+v", refs.Products)
	}
	if len(refs.Branches) != 1 || refs.Branches[0].Name != "Downtown" {
		t.Fatalf("unexpected branches %+v", refs.Branches)
	}
	if len(refs.TimeSlots) != 0 {
		t.Fatalf("failed kind should be empty, got %+v", refs.TimeSlots)
	}
	if stock, ok := refs.ProductStock(1); !ok || stock != 5 {
		t.Fatalf("stock lookup want 5 got %d %v", stock, ok)
	}
}

func TestOpenHydratesExistingEntity(t *testing.T) {
	gateway := &fakeGateway{snapshot: configurator.ComboSnapshot{
		ID:               4,
		ComboBase:        configurator.ComboBase{Name: "Lunch", IsActive: true},
		Items:            []configurator.ComboItemData{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 3}},
		ApplyAllBranches: false,
		BranchIDs:        []uint{7},
		IsFlexibleTime:   true,
	}}
	s, _ := NewSession(gateway, KindCombo, 4, constants.LocaleEnUS)
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if s.Combo().Name != "Lunch" || s.Combo().Items.Len() != 2 {
		t.Fatalf("form not hydrated: %+v", s.Combo().ComboBase)
	}
	if s.Combo().Branches.Mode() != configurator.ScopeExplicit || !s.Combo().Branches.Has(7) {
		t.Fatalf("branch scope not hydrated")
	}
}

func TestOpenFetchFailureLeavesNotice(t *testing.T) {
	gateway := &fakeGateway{fetchErr: &client.TransportError{Status: 404, Message: "Combo not found"}}
	s, _ := NewSession(gateway, KindCombo, 99, constants.LocaleEnUS)
	if err := s.Open(context.Background()); err == nil {
		t.Fatalf("open should surface fetch failure")
	}
	notices := s.Notices()
	if len(notices) != 1 || notices[0].Level != NoticeError || notices[0].Message != "Combo not found" {
		t.Fatalf("unexpected notices %+v", notices)
	}
}

func TestSubmitInvalidFormNeverCallsGateway(t *testing.T) {
	gateway := &fakeGateway{}
	s, _ := NewSession(gateway, KindCombo, 0, constants.LocaleEnUS)

	outcome, err := s.Submit(context.Background())
	if err != nil || outcome != OutcomeInvalid {
		t.Fatalf("want invalid outcome got %v %v", outcome, err)
	}
	if len(gateway.submitted) != 0 {
		t.Fatalf("gateway should not be called")
	}
	errs := s.FieldErrors()
	if errs[configurator.FieldName] == "" || errs["items[0].product_id"] == "" {
		t.Fatalf("errors should stay keyed in the session: %v", errs)
	}
}

func TestFieldErrorsForgetRemovedRows(t *testing.T) {
	gateway := &fakeGateway{}
	s := newComboSession(t, gateway)
	items := s.Combo().Items
	items.AddItem()
	_ = items.SetTarget(1, 2)
	_ = items.SetQuantity(1, 0)

	outcome, err := s.Submit(context.Background())
	if err != nil || outcome != OutcomeInvalid {
		t.Fatalf("want invalid outcome got %v %v", outcome, err)
	}
	if s.FieldErrors()["items[1].quantity"] == "" {
		t.Fatalf("want quantity error on row 1, got %v", s.FieldErrors())
	}

	if _, err := items.RemoveItem(1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if errs := s.FieldErrors(); len(errs) != 0 {
		t.Fatalf("errors of a removed row should disappear, got %v", errs)
	}
	if s.Report().Failed() {
		t.Fatalf("report should no longer block submit")
	}
}

func TestSubmitSuccessAdoptsServerID(t *testing.T) {
	gateway := &fakeGateway{submitEnv: &client.Envelope{
		Success:  true,
		Message:  "Saved successfully",
		Data:     json.RawMessage(`{"id":12}`),
		Warnings: map[string]string{"items[0].quantity": "Quantity exceeds stock"},
	}}
	s := newComboSession(t, gateway)

	outcome, err := s.Submit(context.Background())
	if err != nil || outcome != OutcomeSaved {
		t.Fatalf("want saved got %v %v", outcome, err)
	}
	if s.ID() != 12 || s.Combo().ID != 12 {
		t.Fatalf("session should adopt created id, got %d", s.ID())
	}
	notices := s.Notices()
	if len(notices) != 1 || notices[0].Level != NoticeWarning || len(notices[0].Warnings) != 1 {
		t.Fatalf("unexpected notices %+v", notices)
	}
	if gateway.submitted[0].Get("items[0][quantity]") != "2" {
		t.Fatalf("unexpected payload %v", gateway.submitted[0])
	}

	if _, err := s.Submit(context.Background()); err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	if gateway.submitIDs[1] != 12 {
		t.Fatalf("second submit should update id 12, got %d", gateway.submitIDs[1])
	}
}

func TestSubmitDomainFailureKeepsForm(t *testing.T) {
	gateway := &fakeGateway{submitEnv: &client.Envelope{
		Success: false,
		Message: "Product is used by combos",
		Errors:  map[string]string{"items[0].product_id": "Invalid option"},
	}}
	s := newComboSession(t, gateway)

	outcome, err := s.Submit(context.Background())
	if err != nil || outcome != OutcomeRejected {
		t.Fatalf("want rejected got %v %v", outcome, err)
	}
	notices := s.Notices()
	if len(notices) != 1 || notices[0].Message != "Product is used by combos" {
		t.Fatalf("unexpected notices %+v", notices)
	}
	if s.FieldErrors()["items[0].product_id"] != "Invalid option" {
		t.Fatalf("server errors should be kept for display")
	}
	if s.Combo().Name != "Breakfast" || s.Submitting() {
		t.Fatalf("form should be preserved and editable")
	}
}

func TestSubmitTransportFailureUsesGenericMessage(t *testing.T) {
	gateway := &fakeGateway{submitErr: &client.TransportError{Status: 502}}
	s := newComboSession(t, gateway)

	outcome, _ := s.Submit(context.Background())
	if outcome != OutcomeFailed {
		t.Fatalf("want failed got %v", outcome)
	}
	notices := s.Notices()
	if len(notices) != 1 || notices[0].Message != "Submission failed, please try again" {
		t.Fatalf("unexpected notices %+v", notices)
	}
}

func TestSubmitRejectsConcurrentSubmit(t *testing.T) {
	gateway := &fakeGateway{
		submitEnv:  &client.Envelope{Success: true, Data: json.RawMessage(`{"id":3}`)},
		submitGate: make(chan struct{}),
		started:    make(chan struct{}),
	}
	s := newComboSession(t, gateway)

	done := make(chan Outcome)
	go func() {
		outcome, _ := s.Submit(context.Background())
		done <- outcome
	}()
	<-gateway.started

	if !s.Submitting() {
		t.Fatalf("session should report in-flight submit")
	}
	if _, err := s.Submit(context.Background()); !errors.Is(err, ErrSubmitInProgress) {
		t.Fatalf("want ErrSubmitInProgress got %v", err)
	}
	close(gateway.submitGate)
	if outcome := <-done; outcome != OutcomeSaved {
		t.Fatalf("first submit want saved got %v", outcome)
	}
}

func TestSubmitDiscardedAfterClose(t *testing.T) {
	gateway := &fakeGateway{
		submitEnv:  &client.Envelope{Success: true, Data: json.RawMessage(`{"id":3}`)},
		submitGate: make(chan struct{}),
		started:    make(chan struct{}),
	}
	s := newComboSession(t, gateway)

	done := make(chan Outcome)
	go func() {
		outcome, _ := s.Submit(context.Background())
		done <- outcome
	}()
	<-gateway.started
	s.Close()
	close(gateway.submitGate)

	if outcome := <-done; outcome != OutcomeDiscarded {
		t.Fatalf("want discarded got %v", outcome)
	}
	if s.ID() != 0 || len(s.Notices()) != 0 {
		t.Fatalf("late response must not touch the session")
	}
	if _, err := s.Submit(context.Background()); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("closed session should reject submit, got %v", err)
	}
}

func TestFormAccessorsSafeDuringHydration(t *testing.T) {
	gateway := &fakeGateway{snapshot: configurator.ComboSnapshot{
		ID:             4,
		ComboBase:      configurator.ComboBase{Name: "Lunch"},
		Items:          []configurator.ComboItemData{{ProductID: 1, Quantity: 1}},
		IsFlexibleTime: true,
	}}
	s, _ := NewSession(gateway, KindCombo, 4, constants.LocaleEnUS)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			if s.Combo() == nil {
				t.Errorf("combo form should never be nil")
				return
			}
		}
	}()
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	<-done
	if s.Combo().Name != "Lunch" {
		t.Fatalf("form not hydrated: %+v", s.Combo().ComboBase)
	}
}
