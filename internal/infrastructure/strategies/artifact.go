package strategies

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// artifactPath возвращает путь частного временного файла для результата
// попытки сжатия. UUID в имени исключает коллизии между параллельными
// воркерами.
func artifactPath(strategy string) string {
	name := fmt.Sprintf("squeezer-%s-%s.pdf", strategy, uuid.New().String())
	return filepath.Join(os.TempDir(), name)
}
