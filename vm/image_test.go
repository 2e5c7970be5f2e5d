package vm

import "testing"

func TestParseImage(t *testing.T) {
	image, err := ParseImage("1,-2,3")
	if err != nil {
		t.Fatalf("ParseImage failed: %v", err)
	}
	want := []int64{1, -2, 3}
	if len(image) != len(want) {
		t.Fatalf("Expected %v, got %v", want, image)
	}
	for i, v := range want {
		if image[i] != v {
			t.Errorf("Position %d: expected %d, got %d", i, v, image[i])
		}
	}
}

func TestParseImageTrailingNewline(t *testing.T) {
	image, err := ParseImage("109,1125899906842624,99\n")
	if err != nil {
		t.Fatalf("ParseImage failed: %v", err)
	}
	if len(image) != 3 || image[1] != 1125899906842624 {
		t.Errorf("Expected [109 1125899906842624 99], got %v", image)
	}
}

func TestParseImageInnerSpaces(t *testing.T) {
	image, err := ParseImage(" 1, 2 ,3 ")
	if err != nil {
		t.Fatalf("ParseImage failed: %v", err)
	}
	if len(image) != 3 || image[0] != 1 || image[2] != 3 {
		t.Errorf("Expected [1 2 3], got %v", image)
	}
}

func TestParseImageErrors(t *testing.T) {
	for _, text := range []string{"", "   \n", "1,two,3", "1,,3", "1;2"} {
		if _, err := ParseImage(text); err == nil {
			t.Errorf("ParseImage(%q): expected error", text)
		}
	}
}

func TestLoadImage(t *testing.T) {
	m := NewVM()
	if err := m.LoadImage("104,5,99\n"); err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	_, outputs, err := m.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(outputs) != 1 || outputs[0] != 5 {
		t.Errorf("Expected [5], got %v", outputs)
	}
}
