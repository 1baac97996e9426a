package scorer

import (
	"context"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"ppaxe-backend-controller/domain/feature"
	"ppaxe-backend-controller/utils"
)

type OnnxConfig struct {
	SharedLibraryPath string
	ModelPath         string
	InputName         string
	// output holding class probabilities, shape [1, 2]
	OutputName string
}

/*
OnnxClassifier runs a pre-trained binary classifier in-process. The session is bound to one
input and one output tensor, so Predict calls are serialized.
*/
type OnnxClassifier struct {
	lock    sync.Mutex
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

var ortInitOnce sync.Once
var ortInitErr error

func initORT(sharedLibraryPath string) error {
	ortInitOnce.Do(func() {
		if len(sharedLibraryPath) != 0 {
			ort.SetSharedLibraryPath(sharedLibraryPath)
		}
		ortInitErr = ort.InitializeEnvironment()
	})
	return ortInitErr
}

func NewOnnxClassifier(config *OnnxConfig) (*OnnxClassifier, error) {
	if err := initORT(config.SharedLibraryPath); err != nil {
		return nil, utils.WrapError(err, "initialize onnxruntime fail")
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(feature.Width())))
	if err != nil {
		return nil, utils.WrapError(err, "create input tensor fail")
	}

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 2))
	if err != nil {
		_ = input.Destroy()
		return nil, utils.WrapError(err, "create output tensor fail")
	}

	session, err := ort.NewAdvancedSession(config.ModelPath,
		[]string{config.InputName}, []string{config.OutputName},
		[]ort.Value{input}, []ort.Value{output}, nil)
	if err != nil {
		_ = input.Destroy()
		_ = output.Destroy()
		return nil, utils.WrapErrorf(err, "load onnx model [%s] fail", config.ModelPath)
	}

	return &OnnxClassifier{
		session: session,
		input:   input,
		output:  output,
	}, nil
}

func (o *OnnxClassifier) Predict(ctx context.Context, features []float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(features) != feature.Width() {
		return 0, utils.WrapErrorf(ErrServiceUnavailable, "model expects %d features, got %d", feature.Width(), len(features))
	}

	o.lock.Lock()
	defer o.lock.Unlock()

	data := o.input.GetData()
	for i, x := range features {
		data[i] = float32(x)
	}

	if err := o.session.Run(); err != nil {
		return 0, utils.WrapErrorf(ErrServiceUnavailable, "run onnx session fail: %v", err)
	}

	return float64(o.output.GetData()[1]), nil
}

func (o *OnnxClassifier) Close() error {
	o.lock.Lock()
	defer o.lock.Unlock()

	err := o.session.Destroy()
	_ = o.input.Destroy()
	_ = o.output.Destroy()
	return err
}
