package embedded

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/weapons.yaml": &fstest.MapFile{Data: []byte("weapons: []\n")},
		"data/waves.yaml":   &fstest.MapFile{Data: []byte("waves: []\n")},
	}
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS())
	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	initialized = false
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	initialized = false

	_, err := ReadFile("data/weapons.yaml")
	if err == nil {
		t.Fatal("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestReadFile(t *testing.T) {
	Init(testFS())
	defer func() { initialized = false }()

	t.Run("读取 data/ 下的文件", func(t *testing.T) {
		data, err := ReadFile("./data/weapons.yaml")
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if string(data) != "weapons: []\n" {
			t.Errorf("unexpected content %q", data)
		}
	})

	t.Run("拒绝未知前缀", func(t *testing.T) {
		if _, err := ReadFile("assets/player.png"); err == nil {
			t.Error("expected error for non-data path")
		}
	})

	t.Run("Exists 与 ReadDir", func(t *testing.T) {
		if !Exists("data/waves.yaml") {
			t.Error("waves.yaml should exist")
		}
		if Exists("data/missing.yaml") {
			t.Error("missing.yaml should not exist")
		}
		entries, err := ReadDir("data")
		if err != nil {
			t.Fatalf("ReadDir failed: %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("expected 2 entries, got %d", len(entries))
		}

		// 带前缀与结尾斜杠的根目录同样可以列出
		if entries, err := ReadDir("./data/"); err != nil || len(entries) != 2 {
			t.Errorf("ReadDir(./data/) = %d entries, %v", len(entries), err)
		}
		if _, err := ReadDir("database"); err == nil {
			t.Error("paths that merely start with data must be rejected")
		}
	})
}
