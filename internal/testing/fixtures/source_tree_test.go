package fixtures

import "testing"

func TestRankingCSV(t *testing.T) {
	got := RankingCSV(Row(1, "Emma", "Liam"), Row(2, "", "Noah"))
	want := "Rank,Girl Name,Boy Name\n1,Emma,Liam\n2,,Noah\n"
	if got != want {
		t.Errorf("RankingCSV() = %q, want %q", got, want)
	}
}

func TestSourceTreeBuilder(t *testing.T) {
	fs := NewSourceTree("/data").
		AddYear(2020, Row(1, "Emma", "Liam")).
		AddRaw("notes.txt", "hello").
		Build()

	content, err := fs.ReadFile("/data/2020/girl_boy_names_2020.csv")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(content) != "Rank,Girl Name,Boy Name\n1,Emma,Liam\n" {
		t.Errorf("unexpected content %q", content)
	}

	if _, err := fs.Stat("notes.txt"); err != nil {
		t.Errorf("Stat(notes.txt) failed: %v", err)
	}
}
