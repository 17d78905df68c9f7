package progress

import "testing"

func TestFraction(t *testing.T) {
	t.Parallel()
	tests := []struct {
		u    ProgressUpdate
		want float64
	}{
		{ProgressUpdate{Completed: 1, Total: 4}, 0.25},
		{ProgressUpdate{Completed: 4, Total: 4}, 1},
		{ProgressUpdate{Completed: 5, Total: 4}, 1},
		{ProgressUpdate{Completed: 1, Total: 0}, 0},
	}
	for _, tt := range tests {
		if got := tt.u.Fraction(); got != tt.want {
			t.Errorf("%+v.Fraction() = %v, want %v", tt.u, got, tt.want)
		}
	}
}

func TestChannelCallbackNeverBlocks(t *testing.T) {
	t.Parallel()
	ch := make(chan ProgressUpdate, 1)
	cb := ChannelCallback(ch)

	cb(ProgressUpdate{Completed: 1, Total: 3})
	cb(ProgressUpdate{Completed: 2, Total: 3}) // dropped: buffer full

	got := <-ch
	if got.Completed != 1 {
		t.Errorf("Completed = %d, want 1", got.Completed)
	}
	select {
	case u := <-ch:
		t.Errorf("unexpected second update %+v", u)
	default:
	}
}
