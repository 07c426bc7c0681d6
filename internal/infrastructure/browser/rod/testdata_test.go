package rod

const (
	JobHTML = `<!DOCTYPE html>
<html>
<head><title>Go Engineer</title></head>
<body>
	<div class="jobs-apply-button--top-card">
		<button id="jobs-apply-button-id" onclick="document.getElementById('modal').hidden = false">Easy Apply</button>
	</div>
	<div id="modal" class="jobs-easy-apply-modal" hidden>
		<label for="years">Years of experience</label>
		<input id="years" type="text" />
		<fieldset>
			<legend>Authorized?</legend>
			<label><input type="radio" name="auth" value="Yes" />Yes</label>
			<label><input type="radio" name="auth" value="No" />No</label>
		</fieldset>
		<select id="degree">
			<option value="">Select an option</option>
			<option value="b">Bachelor</option>
		</select>
		<input id="resume" type="file" />
		<button id="next" aria-label="Continue to next step">Next</button>
	</div>
</body>
</html>`

	DelayedHTML = `<!DOCTYPE html>
<html>
<body>
	<div id="root"></div>
	<script>
		setTimeout(function() {
			var b = document.createElement('button');
			b.textContent = 'Submit application';
			document.getElementById('root').appendChild(b);
		}, 300);
	</script>
</body>
</html>`
)
