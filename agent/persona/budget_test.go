package persona

import (
	"testing"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
)

func TestExtractBudgetSingleAmount(t *testing.T) {
	t.Parallel()

	got := ExtractBudget("연비 좋은 경제적인 차 300만원 정도")
	want := contractx.BudgetRange{Min: 240, Max: 360}
	if got != want {
		t.Fatalf("ExtractBudget() = %+v, want %+v", got, want)
	}
}

func TestExtractBudgetUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want contractx.BudgetRange
	}{
		{name: "eok", text: "예산 1억 정도로 생각 중", want: contractx.BudgetRange{Min: 8000, Max: 12000}},
		{name: "cheonman", text: "3천만원 아래로요", want: contractx.BudgetRange{Min: 2400, Max: 3600}},
		{name: "man with comma", text: "2,000만원까지 가능", want: contractx.BudgetRange{Min: 1600, Max: 2400}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractBudget(tt.text); got != tt.want {
				t.Fatalf("ExtractBudget(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractBudgetLargestLiteralWins(t *testing.T) {
	t.Parallel()

	got := ExtractBudget("500만원짜리 말고 1억짜리로")
	want := contractx.BudgetRange{Min: 8000, Max: 12000}
	if got != want {
		t.Fatalf("ExtractBudget() = %+v, want %+v", got, want)
	}
}

func TestExtractBudgetDefaultWhenAbsent(t *testing.T) {
	t.Parallel()

	got := ExtractBudget("BMW 골프백 들어가는 차량 추천해주세요")
	want := contractx.BudgetRange{Min: budgetDefaultMin, Max: budgetDefaultMax}
	if got != want {
		t.Fatalf("ExtractBudget() = %+v, want default %+v", got, want)
	}
}

func TestExtractBudgetFloor(t *testing.T) {
	t.Parallel()

	got := ExtractBudget("50만원으로 살 수 있는 차")
	if got.Min < budgetFloor {
		t.Fatalf("Min = %d, want >= floor %d", got.Min, budgetFloor)
	}
	if got.Min > got.Max {
		t.Fatalf("invariant violated: Min %d > Max %d", got.Min, got.Max)
	}
}
