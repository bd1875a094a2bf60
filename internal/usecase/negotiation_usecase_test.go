package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"waste_negotiation/internal/adapter/persistence/repository"
	"waste_negotiation/internal/domain/engine"
	"waste_negotiation/internal/domain/entities"
	"waste_negotiation/internal/domain/schemas"
	"waste_negotiation/internal/usecase/interfaces"
	mock_interfaces "waste_negotiation/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func testOffer(price int) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"price":%d,"serviceScope":{"wasteTypes":["General Waste"],"collectionFrequency":"Weekly","additionalServices":[]},"timeline":{"contractDurationMonths":3},"additionalTerms":{"paymentTerms":"30 days","cancellationPolicy":"30 days notice"}}`, price))
}

const (
	testSignature = `{"signatureBlob":"c2lnbmVk","signerName":"Jane Doe","signedAt":"2026-10-16T10:00:00Z"}`
	testPaid      = `{"method":"pix","providerReference":"mp-1","paymentStatus":"paid"}`
)

func testEngine() *engine.Engine {
	n := 0
	clock := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	return engine.New(
		engine.WithClock(func() time.Time { return clock }),
		engine.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("step-%d", n)
		}),
	)
}

func newMemoryUseCase(listeners ...interfaces.INegotiationListener) *NegotiationUseCase {
	return NewNegotiationUseCase(repository.NewNegotiationMemoryRepository(), testEngine(), listeners...)
}

func createTestNegotiation(t *testing.T, uc *NegotiationUseCase) NegotiationState {
	t.Helper()
	state, err := uc.CreateNegotiation(context.Background(), CreateNegotiationCommand{
		BusinessID:   "biz-1",
		AgencyID:     "agc-1",
		Title:        "Weekly pickup",
		InitialOffer: testOffer(15000),
	})
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	return state
}

func submitCurrent(t *testing.T, uc *NegotiationUseCase, contractID string, rt entities.ResponseType, details string) AdvanceResult {
	t.Helper()
	current, err := uc.GetCurrentStep(context.Background(), contractID)
	if err != nil || current == nil {
		t.Fatalf("expected a current step, got %v err=%v", current, err)
	}
	res, err := uc.SubmitResponse(context.Background(), contractID, current.ID, rt, json.RawMessage(details))
	if err != nil {
		t.Fatalf("unexpected submit error on %s/%s: %v", current.StepType, rt, err)
	}
	return res
}

func TestNegotiationUseCase_CreateNegotiation(t *testing.T) {
	t.Run("invalid parties", func(t *testing.T) {
		uc := NewNegotiationUseCase(nil, nil)
		for _, cmd := range []CreateNegotiationCommand{
			{BusinessID: " ", AgencyID: "a"},
			{BusinessID: "b", AgencyID: ""},
			{BusinessID: "same", AgencyID: "same"},
		} {
			_, err := uc.CreateNegotiation(context.Background(), cmd)
			if !errors.Is(err, ErrInvalidParties) {
				t.Fatalf("expected ErrInvalidParties, got %v", err)
			}
		}
	})

	t.Run("invalid initial offer never reaches the repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIStepRepository(ctrl)
		uc := NewNegotiationUseCase(repo, testEngine())

		_, err := uc.CreateNegotiation(context.Background(), CreateNegotiationCommand{
			BusinessID: "b", AgencyID: "a", InitialOffer: json.RawMessage(`{"price":0}`),
		})
		if !errors.Is(err, schemas.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("repository error is a persistence error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIStepRepository(ctrl)
		uc := NewNegotiationUseCase(repo, testEngine())

		repo.EXPECT().CreateContract(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(entities.ContractNegotiation{}, errors.New("db down"))

		_, err := uc.CreateNegotiation(context.Background(), CreateNegotiationCommand{
			BusinessID: "b", AgencyID: "a", InitialOffer: testOffer(100),
		})
		if !errors.Is(err, ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		listener := mock_interfaces.NewMockINegotiationListener(ctrl)
		uc := newMemoryUseCase(listener)

		listener.EXPECT().OnNegotiationEvent(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev entities.NegotiationEvent) {
				if ev.Kind != entities.NegotiationEventCreated || ev.NextStepType != entities.StepTypeCounterOffer {
					t.Fatalf("unexpected event: %+v", ev)
				}
			})

		state := createTestNegotiation(t, uc)
		if state.Contract.Status != entities.ContractStatusNegotiating || state.Contract.ID == "" {
			t.Fatalf("unexpected contract: %+v", state.Contract)
		}
		if len(state.Steps) != 2 || state.CurrentStep == nil || state.CurrentStep.StepNumber != 2 {
			t.Fatalf("unexpected steps: %+v", state.Steps)
		}
		if state.CurrentStep.ResponderRole != entities.PartyRoleAgency {
			t.Fatalf("agency answers the initial offer, got %s", state.CurrentStep.ResponderRole)
		}
		if string(state.PreviousOffer) != string(testOffer(15000)) {
			t.Fatalf("unexpected previous offer: %s", state.PreviousOffer)
		}
	})
}

func TestNegotiationUseCase_Get(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewNegotiationUseCase(nil, nil)
		if _, err := uc.GetNegotiation(context.Background(), " "); !errors.Is(err, ErrInvalidContractID) {
			t.Fatalf("expected ErrInvalidContractID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc := newMemoryUseCase()
		if _, err := uc.GetNegotiation(context.Background(), "missing"); !errors.Is(err, ErrNegotiationNotFound) {
			t.Fatalf("expected ErrNegotiationNotFound, got %v", err)
		}
		if _, err := uc.GetCurrentStep(context.Background(), "missing"); !errors.Is(err, ErrNegotiationNotFound) {
			t.Fatalf("expected ErrNegotiationNotFound, got %v", err)
		}
	})

	t.Run("load error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIStepRepository(ctrl)
		uc := NewNegotiationUseCase(repo, nil)

		repo.EXPECT().LoadContract(gomock.Any(), "c-1").Return(entities.ContractNegotiation{ID: "c-1"}, nil)
		repo.EXPECT().LoadSteps(gomock.Any(), "c-1").Return(nil, errors.New("timeout"))

		if _, err := uc.GetNegotiation(context.Background(), "c-1"); !errors.Is(err, ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
	})
}

func TestNegotiationUseCase_SubmitResponse_Scenario(t *testing.T) {
	uc := newMemoryUseCase()
	state := createTestNegotiation(t, uc)
	id := state.Contract.ID

	res := submitCurrent(t, uc, id, entities.ResponseCounter, string(testOffer(18000)))
	if res.NextStep == nil || res.NextStep.StepType != entities.StepTypeCounterOffer || res.NextStep.ResponderRole != entities.PartyRoleBusiness {
		t.Fatalf("expected counter_offer for the business, got %+v", res.NextStep)
	}

	res = submitCurrent(t, uc, id, entities.ResponseAccept, "")
	if res.NextStep == nil || res.NextStep.StepNumber != 4 || res.NextStep.StepType != entities.StepTypeContractReview {
		t.Fatalf("expected step 4 contract_review, got %+v", res.NextStep)
	}
	if res.NextStep.ResponderRole != entities.PartyRoleAgency {
		t.Fatalf("expected agency to review, got %s", res.NextStep.ResponderRole)
	}
	if string(res.CompletedStep.Details) != string(testOffer(18000)) {
		t.Fatalf("accept must freeze the accepted offer, got %s", res.CompletedStep.Details)
	}
}

func TestNegotiationUseCase_SubmitResponse_HappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	listener := mock_interfaces.NewMockINegotiationListener(ctrl)
	listener.EXPECT().OnNegotiationEvent(gomock.Any(), gomock.Any()).Times(6)

	uc := newMemoryUseCase(listener)
	state := createTestNegotiation(t, uc)
	id := state.Contract.ID

	submitCurrent(t, uc, id, entities.ResponseAccept, "")
	submitCurrent(t, uc, id, entities.ResponseAccept, `{"reviewed":true}`)
	submitCurrent(t, uc, id, entities.ResponseSignature, testSignature)
	submitCurrent(t, uc, id, entities.ResponseSignature, testSignature)
	res := submitCurrent(t, uc, id, entities.ResponsePayment, testPaid)

	if res.NextStep != nil || res.Contract.Status != entities.ContractStatusActive {
		t.Fatalf("expected active terminal result, got %+v", res)
	}

	final, err := uc.GetNegotiation(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(final.Steps) != 6 || final.CurrentStep != nil || final.Contract.Status != entities.ContractStatusActive {
		t.Fatalf("unexpected final state: %d steps, current=%v status=%s", len(final.Steps), final.CurrentStep, final.Contract.Status)
	}
	for i, s := range final.Steps {
		if s.StepNumber != i+1 {
			t.Fatalf("step numbers must be contiguous, got %d at %d", s.StepNumber, i)
		}
		if s.Status != entities.StepStatusCompleted {
			t.Fatalf("step %d still %s", s.StepNumber, s.Status)
		}
	}
}

func TestNegotiationUseCase_SubmitResponse_Reject(t *testing.T) {
	uc := newMemoryUseCase()
	state := createTestNegotiation(t, uc)

	res := submitCurrent(t, uc, state.Contract.ID, entities.ResponseReject, `{"reason":"too expensive"}`)
	if res.Contract.Status != entities.ContractStatusCancelled || res.NextStep != nil {
		t.Fatalf("expected cancelled, got %+v", res)
	}
	current, err := uc.GetCurrentStep(context.Background(), state.Contract.ID)
	if err != nil || current != nil {
		t.Fatalf("expected no current step, got %v err=%v", current, err)
	}
}

func TestNegotiationUseCase_SubmitResponse_Errors(t *testing.T) {
	t.Run("empty step id", func(t *testing.T) {
		uc := NewNegotiationUseCase(nil, nil)
		_, err := uc.SubmitResponse(context.Background(), "c-1", "", entities.ResponseAccept, nil)
		if !errors.Is(err, ErrInvalidStepID) {
			t.Fatalf("expected ErrInvalidStepID, got %v", err)
		}
	})

	t.Run("stale step is a conflict and leaves history unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		listener := mock_interfaces.NewMockINegotiationListener(ctrl)
		listener.EXPECT().OnNegotiationEvent(gomock.Any(), gomock.Any()).AnyTimes()

		uc := newMemoryUseCase(listener)
		state := createTestNegotiation(t, uc)
		id := state.Contract.ID
		stale := state.CurrentStep.ID
		submitCurrent(t, uc, id, entities.ResponseCounter, string(testOffer(18000)))

		before, _ := uc.GetNegotiation(context.Background(), id)
		_, err := uc.SubmitResponse(context.Background(), id, stale, entities.ResponseAccept, nil)
		if !errors.Is(err, ErrConflict) || !errors.Is(err, engine.ErrStaleStep) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
		after, _ := uc.GetNegotiation(context.Background(), id)
		if len(before.Steps) != len(after.Steps) || after.CurrentStep.ID != before.CurrentStep.ID {
			t.Fatalf("history changed after a conflict")
		}
	})

	t.Run("lost conditional write is a conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIStepRepository(ctrl)
		listener := mock_interfaces.NewMockINegotiationListener(ctrl)
		eng := testEngine()
		uc := NewNegotiationUseCase(repo, eng, listener)

		initial, pending, _ := eng.Open("c-1", testOffer(100))
		repo.EXPECT().LoadContract(gomock.Any(), "c-1").Return(entities.ContractNegotiation{ID: "c-1", Status: entities.ContractStatusNegotiating}, nil)
		repo.EXPECT().LoadSteps(gomock.Any(), "c-1").Return([]entities.NegotiationStep{initial, pending}, nil)
		repo.EXPECT().AtomicAdvance(gomock.Any(), "c-1", gomock.Any(), gomock.Any(), gomock.Nil()).
			Return(fmt.Errorf("%w: raced", interfaces.ErrStepNotPending))
		listener.EXPECT().OnNegotiationEvent(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev entities.NegotiationEvent) {
				if ev.Kind != entities.NegotiationEventConflict {
					t.Fatalf("expected conflict event, got %s", ev.Kind)
				}
			})

		_, err := uc.SubmitResponse(context.Background(), "c-1", pending.ID, entities.ResponseAccept, nil)
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("write failure is a persistence error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIStepRepository(ctrl)
		eng := testEngine()
		uc := NewNegotiationUseCase(repo, eng)

		initial, pending, _ := eng.Open("c-1", testOffer(100))
		repo.EXPECT().LoadContract(gomock.Any(), "c-1").Return(entities.ContractNegotiation{ID: "c-1", Status: entities.ContractStatusNegotiating}, nil)
		repo.EXPECT().LoadSteps(gomock.Any(), "c-1").Return([]entities.NegotiationStep{initial, pending}, nil)
		repo.EXPECT().AtomicAdvance(gomock.Any(), "c-1", gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("throttled"))

		_, err := uc.SubmitResponse(context.Background(), "c-1", pending.ID, entities.ResponseAccept, nil)
		if !errors.Is(err, ErrPersistence) {
			t.Fatalf("expected ErrPersistence, got %v", err)
		}
	})

	t.Run("illegal transition", func(t *testing.T) {
		uc := newMemoryUseCase()
		state := createTestNegotiation(t, uc)
		_, err := uc.SubmitResponse(context.Background(), state.Contract.ID, state.CurrentStep.ID, entities.ResponseSignature, json.RawMessage(testSignature))
		if !errors.Is(err, engine.ErrIllegalTransition) {
			t.Fatalf("expected ErrIllegalTransition, got %v", err)
		}
	})

	t.Run("validation error", func(t *testing.T) {
		uc := newMemoryUseCase()
		state := createTestNegotiation(t, uc)
		_, err := uc.SubmitResponse(context.Background(), state.Contract.ID, state.CurrentStep.ID, entities.ResponseCounter, json.RawMessage(`{"price":-1}`))
		var verr *schemas.ValidationError
		if !errors.As(err, &verr) || len(verr.Fields) == 0 {
			t.Fatalf("expected ValidationError with fields, got %v", err)
		}
	})
}
