package renderer

import "testing"

func TestDesktopSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "es header",
			in:   "#version 300 es\nprecision highp float;\nvoid main() {}",
			want: "#version 330 core\nprecision highp float;\nvoid main() {}",
		},
		{
			name: "leading blank lines and indentation",
			in:   "\n\n  #version 300 es  \r\nvoid main() {}",
			want: "\n\n  #version 330 core  \r\nvoid main() {}",
		},
		{
			name: "spaced directive",
			in:   "# version   300   es\nvoid main() {}",
			want: "#version 330 core\nvoid main() {}",
		},
		{
			name: "desktop header untouched",
			in:   "#version 330 core\nvoid main() {}",
			want: "#version 330 core\nvoid main() {}",
		},
		{
			name: "no header",
			in:   "void main() {}",
			want: "void main() {}",
		},
		{
			name: "header not first",
			in:   "// hi\n#version 300 es\n",
			want: "// hi\n#version 300 es\n",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
		{
			name: "header only",
			in:   "#version 300 es",
			want: "#version 330 core",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := desktopSource(tt.in); got != tt.want {
				t.Fatalf("desktopSource(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
