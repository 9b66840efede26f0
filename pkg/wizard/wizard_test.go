package wizard_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/goliatone/go-formwizard/pkg/entity"
	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

var (
	fixedID   = uuid.MustParse("9b2d7c34-4a55-4f0e-9d8f-2a51c7e0b001")
	fixedTime = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
)

func newWizard(t *testing.T, sc model.Schema, opts ...wizard.Option) *wizard.Wizard {
	t.Helper()
	base := []wizard.Option{
		wizard.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		wizard.WithClock(func() time.Time { return fixedTime }),
		wizard.WithIDGenerator(func() uuid.UUID { return fixedID }),
	}
	return wizard.New(sc, append(base, opts...)...)
}

func mustUpdate(t *testing.T, w *wizard.Wizard, key, value string) {
	t.Helper()
	if err := w.UpdateField(key, value); err != nil {
		t.Fatalf("update %s: %v", key, err)
	}
}

func mustNext(t *testing.T, w *wizard.Wizard) {
	t.Helper()
	before := w.Step()
	if !w.Next() {
		t.Fatalf("next refused on step %d: %v", before, w.State().Errors)
	}
}

func TestInitialState(t *testing.T) {
	w := newWizard(t, entity.Student())
	st := w.State()

	want := wizard.State{
		Step: 1,
		Values: map[string]string{
			"nome": "", "rm": "", "telefone": "", "email": "",
			"endereco": "", "turma": "", "semestre": "",
		},
		Photo:  model.NoPhoto(),
		Errors: model.Errors{},
	}
	if diff := cmp.Diff(want, st, cmp.AllowUnexported(model.PhotoDecision{})); diff != "" {
		t.Fatalf("initial state mismatch (-want +got):\n%s", diff)
	}
}

func TestScenarioA_SkipPhotoAdvances(t *testing.T) {
	w := newWizard(t, entity.Student())

	if err := w.SetPhoto(model.SkippedPhoto()); err != nil {
		t.Fatalf("set photo: %v", err)
	}
	mustNext(t, w)

	if w.Step() != 2 {
		t.Fatalf("expected step 2, got %d", w.Step())
	}
	if w.State().Errors.Has("photo") {
		t.Fatalf("photo error should not be present")
	}
}

func TestScenarioB_EmptyNameRefused(t *testing.T) {
	w := newWizard(t, entity.Student())
	advanceToStep(t, w, 2)

	mustUpdate(t, w, "nome", "")
	if w.Next() {
		t.Fatalf("next should be refused")
	}
	if w.Step() != 2 {
		t.Fatalf("step changed to %d", w.Step())
	}
	if got := w.State().Errors["nome"]; got != "Nome é obrigatório" {
		t.Fatalf("nome error: %q", got)
	}
}

func TestScenarioC_EmailErrorClearsOnEdit(t *testing.T) {
	w := newWizard(t, entity.Student())
	advanceToStep(t, w, 3)

	mustUpdate(t, w, "endereco", "Rua A, 10")
	mustUpdate(t, w, "email", "bad-email")
	if w.Next() {
		t.Fatalf("next should be refused")
	}
	if got := w.State().Errors["email"]; got != "Email inválido" {
		t.Fatalf("email error: %q", got)
	}

	mustUpdate(t, w, "email", "a@b.co")
	if w.State().Errors.Has("email") {
		t.Fatalf("email error should clear on edit")
	}
}

func TestScenarioD_TeacherSubmitEmitsRecordAndResets(t *testing.T) {
	var notes []wizard.Notification
	w := newWizard(t, entity.Teacher(), wizard.WithNotifier(wizard.NotifierFunc(func(n wizard.Notification) {
		notes = append(notes, n)
	})))

	if err := w.SetPhoto(model.SkippedPhoto()); err != nil {
		t.Fatalf("set photo: %v", err)
	}
	mustNext(t, w)
	mustUpdate(t, w, "nome", "Ana")
	mustUpdate(t, w, "rp", "RP1")
	mustUpdate(t, w, "telefone", "11999999999")
	mustNext(t, w)
	mustUpdate(t, w, "email", "ana@x.com")
	mustUpdate(t, w, "disciplina", "Matemática")
	mustNext(t, w)
	mustUpdate(t, w, "unidade", "Unidade A")
	mustUpdate(t, w, "tipoAvaliacao", "Prova")

	sub, ok, err := w.Submit()
	if err != nil || !ok {
		t.Fatalf("submit: ok=%v err=%v errors=%v", ok, err, w.State().Errors)
	}

	wantFields := map[string]string{
		"photo":         "Foto adicionará depois",
		"nome":          "Ana",
		"rp":            "RP1",
		"telefone":      "11999999999",
		"email":         "ana@x.com",
		"disciplina":    "Matemática",
		"unidade":       "Unidade A",
		"tipoAvaliacao": "Prova",
	}
	if diff := cmp.Diff(wantFields, sub.Record.Fields()); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if sub.ID != fixedID || !sub.SubmittedAt.Equal(fixedTime) || sub.Record.Entity != "teacher" {
		t.Fatalf("submission envelope: %#v", sub)
	}

	if diff := cmp.Diff(wizard.Initial(entity.Teacher()), w.State(), cmp.AllowUnexported(model.PhotoDecision{})); diff != "" {
		t.Fatalf("state not reset (-want +got):\n%s", diff)
	}

	if len(notes) != 1 {
		t.Fatalf("expected exactly one notification, got %d", len(notes))
	}
	if notes[0].Kind != wizard.NotificationSubmitted || notes[0].Message != "Professor cadastrado com sucesso!" || notes[0].Title != "Sucesso!" {
		t.Fatalf("notification: %#v", notes[0])
	}
	if notes[0].Submission == nil || notes[0].Submission.ID != fixedID {
		t.Fatalf("notification should carry the submission")
	}
}

func TestSubmit_CapturedPhotoResolvesToReference(t *testing.T) {
	w := newWizard(t, entity.Student())
	if err := w.SetPhoto(model.CapturedPhoto("file:///fotos/ana.jpg")); err != nil {
		t.Fatalf("set photo: %v", err)
	}
	fillStudent(t, w)

	sub, ok, err := w.Submit()
	if err != nil || !ok {
		t.Fatalf("submit: ok=%v err=%v", ok, err)
	}
	if sub.Record.Photo != "file:///fotos/ana.jpg" {
		t.Fatalf("photo: %q", sub.Record.Photo)
	}
}

func TestSubmit_RefusedKeepsLastStep(t *testing.T) {
	w := newWizard(t, entity.Student())
	advanceToStep(t, w, 4)
	mustUpdate(t, w, "turma", "3A")

	sub, ok, err := w.Submit()
	if err != nil {
		t.Fatalf("submit err: %v", err)
	}
	if ok || sub.ID != uuid.Nil {
		t.Fatalf("submit should be refused")
	}
	if w.Step() != 4 {
		t.Fatalf("step changed to %d", w.Step())
	}
	want := model.Errors{"semestre": "Semestre é obrigatório"}
	if diff := cmp.Diff(want, w.State().Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if w.State().Values["turma"] != "3A" {
		t.Fatalf("values should survive a refused submit")
	}
}

func TestSubmit_OnlyOnLastStep(t *testing.T) {
	w := newWizard(t, entity.Student())
	if _, _, err := w.Submit(); !errors.Is(err, wizard.ErrNotLastStep) {
		t.Fatalf("expected ErrNotLastStep, got %v", err)
	}
}

func TestNext_NeverAdvancesWithEmptyRequiredField(t *testing.T) {
	sc := entity.Student()
	for step := 2; step <= sc.StepCount(); step++ {
		for _, field := range sc.FieldsForStep(step) {
			w := newWizard(t, sc)
			advanceToStep(t, w, step)
			fillStep(t, w, step)
			mustUpdate(t, w, field.Key, "  ")

			if w.Next() {
				t.Fatalf("step %d advanced with %s empty", step, field.Key)
			}
			if w.Step() != step {
				t.Fatalf("step moved to %d", w.Step())
			}
		}
	}
}

func TestNext_PhotoUnsetRefused(t *testing.T) {
	w := newWizard(t, entity.Student())
	if w.Next() {
		t.Fatalf("photo step should require a decision")
	}
	want := model.Errors{"photo": "Selecione uma foto ou marque para adicionar depois"}
	if diff := cmp.Diff(want, w.State().Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestNext_ValidAdvancesByOneAndClearsErrors(t *testing.T) {
	sc := entity.Teacher()
	w := newWizard(t, sc)
	_ = w.SetPhoto(model.SkippedPhoto())

	for step := 1; step < sc.StepCount(); step++ {
		fillStep(t, w, step)
		// Stale error from a failed attempt on this step.
		if step > 1 {
			key := sc.FieldsForStep(step)[0].Key
			saved := w.State().Values[key]
			mustUpdate(t, w, key, "")
			w.Next()
			mustUpdate(t, w, key, saved)
		}
		mustNext(t, w)
		if w.Step() != step+1 {
			t.Fatalf("expected step %d, got %d", step+1, w.Step())
		}
		if !w.State().Errors.Empty() {
			t.Fatalf("errors not cleared: %v", w.State().Errors)
		}
	}
}

func TestNext_OnLastStepDoesNotAdvance(t *testing.T) {
	sc := entity.Student()
	w := newWizard(t, sc)
	advanceToStep(t, w, sc.StepCount())
	fillStep(t, w, sc.StepCount())

	if !w.Next() {
		t.Fatalf("valid last step should pass validation")
	}
	if w.Step() != sc.StepCount() {
		t.Fatalf("step moved past N: %d", w.Step())
	}
}

func TestNext_ReplacesErrorsNotMerges(t *testing.T) {
	w := newWizard(t, entity.Student())
	advanceToStep(t, w, 2)
	mustUpdate(t, w, "rm", "")
	w.Next()
	if len(w.State().Errors) != 3 {
		t.Fatalf("expected three errors, got %v", w.State().Errors)
	}

	mustUpdate(t, w, "rm", "123")
	mustUpdate(t, w, "telefone", "1199")
	mustUpdate(t, w, "nome", "")
	w.Next()

	want := model.Errors{"nome": "Nome é obrigatório"}
	if diff := cmp.Diff(want, w.State().Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestBack_KeepsStaleErrorsAndSkipsValidation(t *testing.T) {
	w := newWizard(t, entity.Student())
	advanceToStep(t, w, 3)
	w.Next()
	staleErrors := w.State().Errors

	if err := w.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	if w.Step() != 2 {
		t.Fatalf("expected step 2, got %d", w.Step())
	}
	if diff := cmp.Diff(staleErrors, w.State().Errors); diff != "" {
		t.Fatalf("back should leave errors untouched (-want +got):\n%s", diff)
	}
}

func TestBack_OnFirstStep(t *testing.T) {
	w := newWizard(t, entity.Student())
	if err := w.Back(); !errors.Is(err, wizard.ErrFirstStep) {
		t.Fatalf("expected ErrFirstStep, got %v", err)
	}
}

func TestBackThenNext_ReproducesValidation(t *testing.T) {
	w := newWizard(t, entity.Student())
	advanceToStep(t, w, 3)
	mustUpdate(t, w, "email", "bad-email")
	w.Next()
	first := w.State().Errors

	if err := w.Back(); err != nil {
		t.Fatalf("back: %v", err)
	}
	mustNext(t, w)
	w.Next()

	if diff := cmp.Diff(first, w.State().Errors); diff != "" {
		t.Fatalf("round trip changed validation (-want +got):\n%s", diff)
	}
}

func TestUpdateField_UnknownKey(t *testing.T) {
	w := newWizard(t, entity.Student())
	if err := w.UpdateField("rp", "x"); !errors.Is(err, wizard.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestUpdateField_ClearsOnlyItsOwnError(t *testing.T) {
	w := newWizard(t, entity.Student())
	advanceToStep(t, w, 2)
	mustUpdate(t, w, "nome", "")
	mustUpdate(t, w, "rm", "")
	w.Next()

	mustUpdate(t, w, "nome", "x")
	errs := w.State().Errors
	if errs.Has("nome") || !errs.Has("rm") {
		t.Fatalf("partial clear failed: %v", errs)
	}
}

func TestSetPhoto_MutualExclusionAndErrors(t *testing.T) {
	w := newWizard(t, entity.Student())
	w.Next()
	if !w.State().Errors.Has("photo") {
		t.Fatalf("expected photo error")
	}

	if err := w.SetPhoto(model.CapturedPhoto("content://img/1")); err != nil {
		t.Fatalf("set photo: %v", err)
	}
	if w.State().Errors.Has("photo") {
		t.Fatalf("capture should clear the photo error")
	}

	if err := w.ToggleSkipPhoto(); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := w.State().Photo; got.State() != model.PhotoSkipped || got.Reference() != "" {
		t.Fatalf("skip should replace the capture: %v", got)
	}

	if err := w.ToggleSkipPhoto(); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := w.State().Photo; got.Decided() {
		t.Fatalf("toggling off should unset: %v", got)
	}
	if w.State().Errors.Has("photo") {
		t.Fatalf("toggling off must not re-set the error before validation")
	}

	w.Next()
	if !w.State().Errors.Has("photo") {
		t.Fatalf("validation should flag the unset photo again")
	}
}

func TestSetPhoto_OnlyOnPhotoStep(t *testing.T) {
	w := newWizard(t, entity.Student())
	advanceToStep(t, w, 2)
	if err := w.SetPhoto(model.SkippedPhoto()); !errors.Is(err, wizard.ErrNotPhotoStep) {
		t.Fatalf("expected ErrNotPhotoStep, got %v", err)
	}
	if err := w.ToggleSkipPhoto(); !errors.Is(err, wizard.ErrNotPhotoStep) {
		t.Fatalf("expected ErrNotPhotoStep, got %v", err)
	}
}

func TestCancel_ResetsState(t *testing.T) {
	w := newWizard(t, entity.Student())
	advanceToStep(t, w, 3)
	mustUpdate(t, w, "email", "x@y.z")

	w.Cancel()
	if diff := cmp.Diff(wizard.Initial(entity.Student()), w.State(), cmp.AllowUnexported(model.PhotoDecision{})); diff != "" {
		t.Fatalf("cancel should reset (-want +got):\n%s", diff)
	}
}

func TestInstancesAreIndependent(t *testing.T) {
	student := newWizard(t, entity.Student())
	teacher := newWizard(t, entity.Teacher())

	_ = student.SetPhoto(model.SkippedPhoto())
	mustNext(t, student)
	mustUpdate(t, student, "nome", "Bia")

	if teacher.Step() != 1 || teacher.State().Values["nome"] != "" {
		t.Fatalf("teacher wizard affected by student wizard")
	}
}

func TestState_ReturnsCopies(t *testing.T) {
	w := newWizard(t, entity.Student())
	st := w.State()
	st.Values["nome"] = "leak"
	st.Errors["nome"] = "leak"

	if w.State().Values["nome"] != "" || w.State().Errors.Has("nome") {
		t.Fatalf("state accessor leaked internal maps")
	}
}

func TestView(t *testing.T) {
	w := newWizard(t, entity.Student())
	w.Next()

	view := w.View()
	if !view.Photo || view.Label != "Foto do Aluno" || view.CanGoBack || view.IsLast {
		t.Fatalf("photo view: %#v", view)
	}
	if view.PhotoError == "" || !view.HasErrors() {
		t.Fatalf("photo view should show the error")
	}

	_ = w.SetPhoto(model.SkippedPhoto())
	mustNext(t, w)
	mustUpdate(t, w, "nome", "Bia")
	w.Next()

	view = w.View()
	if view.Step != 2 || view.StepCount != 4 || !view.CanGoBack {
		t.Fatalf("step 2 view: %#v", view)
	}
	got := make(map[string][2]string)
	for _, f := range view.Fields {
		got[f.Field.Key] = [2]string{f.Value, f.Error}
	}
	want := map[string][2]string{
		"nome":     {"Bia", ""},
		"rm":       {"", "RM é obrigatório"},
		"telefone": {"", "Telefone é obrigatório"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func advanceToStep(t *testing.T, w *wizard.Wizard, target int) {
	t.Helper()
	if w.Step() == 1 && target > 1 && !w.State().Photo.Decided() {
		if err := w.SetPhoto(model.SkippedPhoto()); err != nil {
			t.Fatalf("set photo: %v", err)
		}
	}
	for w.Step() < target {
		fillStep(t, w, w.Step())
		mustNext(t, w)
	}
}

func fillStep(t *testing.T, w *wizard.Wizard, step int) {
	t.Helper()
	for _, f := range w.Schema().FieldsForStep(step) {
		value := "valor"
		if f.Kind == model.FieldKindEmail {
			value = "pessoa@escola.com"
		}
		mustUpdate(t, w, f.Key, value)
	}
}

func fillStudent(t *testing.T, w *wizard.Wizard) {
	t.Helper()
	advanceToStep(t, w, 4)
	fillStep(t, w, 4)
}
