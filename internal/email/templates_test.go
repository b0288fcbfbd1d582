package email

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordResetMessage(t *testing.T) {
	tm, err := NewDefaultTemplateManager("")
	require.NoError(t, err)

	msg, err := tm.PasswordResetMessage("a@x.com", "Alice <script>", "http://localhost:3000/reset-password?token=abc", "1 hour")
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", msg.To)
	assert.Equal(t, "Password Reset Request", msg.Subject)
	assert.Contains(t, msg.HTML, `href="http://localhost:3000/reset-password?token=abc"`)
	assert.Contains(t, msg.HTML, "Alice &lt;script&gt;")
	assert.Contains(t, msg.Text, "token=abc")
}

func TestNewDefaultTemplateManager_DirOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "password_reset.html"), []byte("custom {{.ResetLink}}"), 0o600))

	tm, err := NewDefaultTemplateManager(dir)
	require.NoError(t, err)

	out, err := tm.Render(TemplatePasswordReset, TemplateData{"ResetLink": "L"})
	require.NoError(t, err)
	assert.Equal(t, "custom L", out)

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestNewMailer(t *testing.T) {
	assert.IsType(t, LogSender{}, NewMailer(SMTPConfig{}))
	assert.IsType(t, &SMTPSender{}, NewMailer(SMTPConfig{Host: "smtp.example.com", Port: 587}))

	assert.NoError(t, LogSender{}.Send(context.Background(), Message{To: "a@x.com", Subject: "s"}))
}
