package main

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATA_BACKEND", "file")
	t.Setenv("DATA_DIRECTORY", t.TempDir())
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("PAYERS", "")
	t.Setenv("CATEGORIES", "")
	t.Setenv("PERSIST_CATEGORIES", "")
}

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

var createdID = regexp.MustCompile(`Despesa (\d+) registrada`)

func addExpense(t *testing.T, desc, amount, payer, category string) string {
	t.Helper()
	res := runCLI(t, "", "add", "-d", desc, "-a", amount, "-p", payer, "-c", category)
	if res.code != 0 {
		t.Fatalf("add failed: %s", res.stderr)
	}
	m := createdID.FindStringSubmatch(res.stdout)
	if m == nil {
		t.Fatalf("no id in output %q", res.stdout)
	}
	return m[1]
}

func TestAddListReportPersist(t *testing.T) {
	setupEnv(t)

	addExpense(t, "Lunch", "25,50", "Luiz", "Alimentação")
	addExpense(t, "Cinema", "10", "Michely", "Lazer")

	res := runCLI(t, "", "list")
	if res.code != 0 {
		t.Fatalf("list failed: %s", res.stderr)
	}
	if strings.Index(res.stdout, "Lunch") > strings.Index(res.stdout, "Cinema") || !strings.Contains(res.stdout, "25.50") {
		t.Fatalf("unexpected list output:\n%s", res.stdout)
	}

	res = runCLI(t, "", "report")
	if res.code != 0 {
		t.Fatalf("report failed: %s", res.stderr)
	}
	for _, want := range []string{"35.50", "Luiz", "Michely", "10.00"} {
		if !strings.Contains(res.stdout, want) {
			t.Fatalf("report misses %q:\n%s", want, res.stdout)
		}
	}
}

func TestAddInteractive(t *testing.T) {
	setupEnv(t)
	res := runCLI(t, "Taxi\n12.345\nLuiz\nTransporte\n", "add")
	if res.code != 0 {
		t.Fatalf("add failed: %s", res.stderr)
	}
	if !strings.Contains(res.stdout, "12.35") {
		t.Fatalf("expected rounded amount in output:\n%s", res.stdout)
	}
}

func TestAddValidationMessage(t *testing.T) {
	setupEnv(t)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"add", "-d", "", "-a", "1", "-p", "Luiz", "-c", "Lazer"}, "Preencha o campo Descrição."},
		{[]string{"add", "-d", "x", "-a", "abc", "-p", "Luiz", "-c", "Lazer"}, "Preencha o campo Valor corretamente."},
		{[]string{"add", "-d", "x", "-a", "1", "-p", "", "-c", "Lazer"}, "Escolha quem pagou."},
		{[]string{"add", "-d", "x", "-a", "1", "-p", "Luiz", "-c", ""}, "Escolha uma categoria."},
	}
	for _, tt := range tests {
		res := runCLI(t, "", tt.args...)
		if res.code != 1 || !strings.Contains(res.stderr, tt.want) {
			t.Fatalf("args %v: code=%d stderr=%q, want %q", tt.args, res.code, res.stderr, tt.want)
		}
	}
	if res := runCLI(t, "", "list"); !strings.Contains(res.stdout, "Nenhuma despesa") {
		t.Fatalf("rejected drafts were stored:\n%s", res.stdout)
	}
}

func TestEditKeepsID(t *testing.T) {
	setupEnv(t)
	id := addExpense(t, "Hotel", "200", "Luiz", "Hospedagem")

	// Description and payer from flags, amount and category keep their values.
	res := runCLI(t, "\n\n", "edit", id, "-d", "Hotel praia", "-p", "Michely")
	if res.code != 0 {
		t.Fatalf("edit failed: %s", res.stderr)
	}
	if !strings.Contains(res.stdout, "Despesa "+id+" atualizada: Hotel praia 200.00") {
		t.Fatalf("unexpected edit output:\n%s", res.stdout)
	}

	if res := runCLI(t, "", "edit", "42", "-d", "x", "-a", "1", "-p", "Luiz", "-c", "Lazer"); res.code != 1 || !strings.Contains(res.stderr, "não encontrada") {
		t.Fatalf("expected not found, got code=%d stderr=%q", res.code, res.stderr)
	}
}

func TestDeleteConfirmation(t *testing.T) {
	setupEnv(t)
	id := addExpense(t, "Bar", "8", "Luiz", "Lazer")

	res := runCLI(t, "n\n", "delete", id)
	if res.code != 0 || !strings.Contains(res.stdout, "Nada foi excluído") {
		t.Fatalf("declined delete: code=%d out=%q", res.code, res.stdout)
	}
	if res := runCLI(t, "", "list"); !strings.Contains(res.stdout, "Bar") {
		t.Fatalf("declined delete removed the expense")
	}

	res = runCLI(t, "y\n", "delete", id)
	if res.code != 0 || !strings.Contains(res.stdout, "excluída") {
		t.Fatalf("confirmed delete: code=%d out=%q", res.code, res.stdout)
	}

	// Deleting again is a no-op.
	res = runCLI(t, "", "delete", "--force", id)
	if res.code != 0 || !strings.Contains(res.stdout, "Nada foi excluído") {
		t.Fatalf("repeated delete: code=%d out=%q", res.code, res.stdout)
	}
}

func TestCategoriesPersisted(t *testing.T) {
	setupEnv(t)
	t.Setenv("PERSIST_CATEGORIES", "true")

	if res := runCLI(t, "", "categories", "add", "Viagem"); res.code != 0 || !strings.Contains(res.stdout, "adicionada") {
		t.Fatalf("add category: code=%d out=%q err=%q", res.code, res.stdout, res.stderr)
	}
	if res := runCLI(t, "", "categories", "add", "Viagem"); !strings.Contains(res.stdout, "já existente") {
		t.Fatalf("duplicate category accepted: %q", res.stdout)
	}

	res := runCLI(t, "", "categories", "rename", "4", "Viagens")
	if res.code != 0 || !strings.Contains(res.stdout, "Viagens") {
		t.Fatalf("rename: code=%d out=%q", res.code, res.stdout)
	}

	res = runCLI(t, "Passeios\n", "categories", "rename", "2")
	if res.code != 0 || !strings.Contains(res.stdout, "Passeios") {
		t.Fatalf("interactive rename: code=%d out=%q", res.code, res.stdout)
	}

	res = runCLI(t, "n\n", "categories", "remove", "0")
	if !strings.Contains(res.stdout, "Nada foi excluído") {
		t.Fatalf("declined remove: %q", res.stdout)
	}
	res = runCLI(t, "", "categories", "remove", "--force", "0")
	if res.code != 0 || !strings.Contains(res.stdout, "Categoria excluída") {
		t.Fatalf("forced remove: code=%d out=%q", res.code, res.stdout)
	}

	res = runCLI(t, "", "categories", "list")
	if strings.Contains(res.stdout, "Alimentação") || !strings.Contains(res.stdout, "Viagens") || !strings.Contains(res.stdout, "Passeios") {
		t.Fatalf("unexpected categories after restart:\n%s", res.stdout)
	}
}

func TestCategoriesNotPersistedByDefault(t *testing.T) {
	setupEnv(t)
	runCLI(t, "", "categories", "add", "Viagem")
	res := runCLI(t, "", "categories", "list")
	if strings.Contains(res.stdout, "Viagem") {
		t.Fatalf("categories should reset to the seed list:\n%s", res.stdout)
	}
}

func TestCategoriesHelpExplainsPersistence(t *testing.T) {
	setupEnv(t)
	res := runCLI(t, "", "categories", "--help")
	if res.code != 0 || !strings.Contains(res.stdout, "PERSIST_CATEGORIES=true") {
		t.Fatalf("help must point to PERSIST_CATEGORIES: code=%d out=%q", res.code, res.stdout)
	}
}

func TestInvalidConfig(t *testing.T) {
	setupEnv(t)
	res := runCLI(t, "", "--backend", "postgres", "list")
	if res.code != 1 || !strings.Contains(res.stderr, "invalid data backend") {
		t.Fatalf("expected config error, got code=%d stderr=%q", res.code, res.stderr)
	}
}
