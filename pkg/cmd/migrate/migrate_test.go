package migrate

import "testing"

func TestPrepareURLForDB(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "plain",
			url:  "postgresql://u:p@localhost:5432/drt",
			want: "postgresql://u:p@localhost:5432/drt?sslmode=disable",
		},
		{
			name: "other options",
			url:  "postgresql://u:p@localhost:5432/drt?connect_timeout=5",
			want: "postgresql://u:p@localhost:5432/drt?connect_timeout=5&sslmode=disable",
		},
		{
			name: "keep explicit sslmode",
			url:  "postgresql://u:p@localhost:5432/drt?sslmode=require",
			want: "postgresql://u:p@localhost:5432/drt?sslmode=require",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prepareURLForDB(tt.url); got != tt.want {
				t.Errorf("prepareURLForDB() = %v, want %v", got, tt.want)
			}
		})
	}
}
