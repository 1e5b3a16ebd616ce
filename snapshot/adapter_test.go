package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestStaticAdapter_Capture(t *testing.T) {
	adapter := &StaticAdapter{Desc: heroDesc()}

	snap, anomalies, err := adapter.Capture(context.Background(), ScopeAll)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if len(anomalies) != 0 {
		t.Errorf("Capture() anomalies = %v", anomalies)
	}
	if snap.Mesh("Body") == nil {
		t.Error("Capture() lost scene content")
	}
}

func TestStaticAdapter_CancelledContext(t *testing.T) {
	adapter := &StaticAdapter{Desc: heroDesc()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := adapter.Capture(ctx, ScopeAll); err == nil {
		t.Error("Capture() with cancelled context returned nil error")
	}
}

func TestFileAdapter_Capture(t *testing.T) {
	sceneYAML := `
skeletons:
  - name: Hero_BODY
    in_pose_position: true
    bones:
      - name: Hips
        local_location: true
        rotation_mode: XYZ
meshes:
  - name: Body
    poly_count: 500
    uv_channels: 1
textures:
  - name: SkinTex
    file_path: tex/skin.png
    format: png
    width: 1024
    height: 1024
    on_disk: true
`
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(sceneYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	adapter := &FileAdapter{Path: path}
	snap, anomalies, err := adapter.Capture(context.Background(), ScopeAll)
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if len(anomalies) != 0 {
		t.Errorf("Capture() anomalies = %v", anomalies)
	}

	sk := snap.MainSkeleton()
	if sk == nil || !sk.InPosePosition || sk.Bone("Hips") == nil {
		t.Errorf("skeleton not decoded: %+v", sk)
	}
	if m := snap.Mesh("Body"); m == nil || m.PolyCount != 500 {
		t.Errorf("mesh not decoded: %+v", m)
	}
	if tx := snap.Texture("SkinTex"); tx == nil || tx.Format != "png" || !tx.OnDisk {
		t.Errorf("texture not decoded: %+v", tx)
	}
}

func TestFileAdapter_ReReadsPerCapture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte("meshes:\n  - name: Body\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	adapter := &FileAdapter{Path: path}

	snap, _, err := adapter.Capture(context.Background(), ScopeAll)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Meshes()) != 1 {
		t.Fatalf("first capture meshes = %d, want 1", len(snap.Meshes()))
	}

	if err := os.WriteFile(path, []byte("meshes:\n  - name: Body\n  - name: Face\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	snap, _, err = adapter.Capture(context.Background(), ScopeAll)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Meshes()) != 2 {
		t.Errorf("second capture meshes = %d, want 2 after file edit", len(snap.Meshes()))
	}
}

func TestFileAdapter_MissingFile(t *testing.T) {
	adapter := &FileAdapter{Path: filepath.Join(t.TempDir(), "absent.yaml")}
	if _, _, err := adapter.Capture(context.Background(), ScopeAll); err == nil {
		t.Error("Capture() of a missing file returned nil error")
	}
}

func TestBuilder(t *testing.T) {
	b := NewBuilder().
		AddSkeleton(SkeletonDesc{Name: "Rig"}).
		AddMesh(MeshDesc{Name: "Body"}).
		AddMaterial(MaterialDesc{Name: "Skin", MaterialType: "surface"}).
		AddTexture(TextureDesc{Name: "Tex", OnDisk: true})

	snap, anomalies := b.Snapshot(ScopeAll)
	if len(anomalies) != 0 {
		t.Fatalf("Snapshot() anomalies = %v", anomalies)
	}
	if snap.NodeCount() != 5 {
		t.Errorf("NodeCount() = %d, want 5", snap.NodeCount())
	}
	if len(b.Desc().Meshes) != 1 {
		t.Errorf("Desc() meshes = %d, want 1", len(b.Desc().Meshes))
	}
}
